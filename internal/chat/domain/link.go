package domain

// TransportStatus raw live-channel transport status
type TransportStatus string

const (
	// TransportConnecting transport is attempting to establish
	TransportConnecting TransportStatus = "connecting"
	// TransportOpen transport is established
	TransportOpen TransportStatus = "open"
	// TransportClosing transport is shutting down
	TransportClosing TransportStatus = "closing"
	// TransportClosed transport is down
	TransportClosed TransportStatus = "closed"
)

// LinkState user-facing connection state, derived from transport status + session history.
// connecting and reconnecting are distinct so the UI can show a first-contact
// spinner versus an unobtrusive reconnect indicator.
type LinkState string

const (
	// LinkDisconnected no authenticated user or transport down
	LinkDisconnected LinkState = "disconnected"
	// LinkConnecting first connection attempt of this session
	LinkConnecting LinkState = "connecting"
	// LinkConnected transport open
	LinkConnected LinkState = "connected"
	// LinkReconnecting transport re-establishing after having been open
	LinkReconnecting LinkState = "reconnecting"
)
