package app

import (
	"testing"

	"maestro_marketplace/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func TestLinkTracker_FirstSessionLifecycle(t *testing.T) {
	tracker := &LinkTracker{}

	assert.Equal(t, domain.LinkConnecting, tracker.Observe("u1", domain.TransportConnecting))
	assert.Equal(t, domain.LinkConnected, tracker.Observe("u1", domain.TransportOpen))
	assert.Equal(t, domain.LinkReconnecting, tracker.Observe("u1", domain.TransportConnecting))
	assert.Equal(t, domain.LinkConnected, tracker.Observe("u1", domain.TransportOpen))
}

func TestLinkTracker_ClosedAndClosing(t *testing.T) {
	tracker := &LinkTracker{}
	tracker.Observe("u1", domain.TransportOpen)

	assert.Equal(t, domain.LinkDisconnected, tracker.Observe("u1", domain.TransportClosing))
	assert.Equal(t, domain.LinkDisconnected, tracker.Observe("u1", domain.TransportClosed))
	// still the same session, so the next attempt is a reconnect
	assert.Equal(t, domain.LinkReconnecting, tracker.Observe("u1", domain.TransportConnecting))
}

func TestLinkTracker_NoUserIsAlwaysDisconnected(t *testing.T) {
	tracker := &LinkTracker{}

	assert.Equal(t, domain.LinkDisconnected, tracker.Observe("", domain.TransportConnecting))
	assert.Equal(t, domain.LinkDisconnected, tracker.Observe("", domain.TransportOpen))
}

func TestLinkTracker_UserChangeResetsSession(t *testing.T) {
	tracker := &LinkTracker{}
	tracker.Observe("u1", domain.TransportOpen)

	// a different user logging in starts a fresh session: first attempt is
	// "connecting", never "reconnecting" inherited from the previous user
	assert.Equal(t, domain.LinkConnecting, tracker.Observe("u2", domain.TransportConnecting))
	assert.Equal(t, domain.LinkConnected, tracker.Observe("u2", domain.TransportOpen))
}

func TestLinkTracker_LogoutThenLoginResets(t *testing.T) {
	tracker := &LinkTracker{}
	tracker.Observe("u1", domain.TransportOpen)

	assert.Equal(t, domain.LinkDisconnected, tracker.Observe("", domain.TransportClosed))
	// same user again, but the logout reset the session history
	assert.Equal(t, domain.LinkConnecting, tracker.Observe("u1", domain.TransportConnecting))
}
