package app

import "maestro_marketplace/internal/chat/domain"

// LinkTracker derives the user-facing link state from raw transport status.
// The connecting/reconnecting distinction hangs on whether the transport has
// ever opened for the current user's session; the flag resets whenever the
// authenticated user changes, not only on logout, so a fresh login never
// inherits the previous user's reconnect indicator.
type LinkTracker struct {
	userID     string
	everOpened bool
}

// Observe fold one transport status observation into the tracker and return
// the derived state. userID is empty when no user is authenticated.
func (t *LinkTracker) Observe(userID string, status domain.TransportStatus) domain.LinkState {
	if userID != t.userID {
		t.userID = userID
		t.everOpened = false
	}
	if userID == "" {
		return domain.LinkDisconnected
	}

	switch status {
	case domain.TransportOpen:
		t.everOpened = true
		return domain.LinkConnected
	case domain.TransportConnecting:
		if t.everOpened {
			return domain.LinkReconnecting
		}
		return domain.LinkConnecting
	default:
		return domain.LinkDisconnected
	}
}
