package push

import "time"

// Buffer sizes
const (
	// clientBuffer is the buffer size for each client's outbound channel
	clientBuffer = 16
)

// Websocket connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second

	// ReadTimeout bounds how long a connection may sit idle between
	// client messages (pongs included) before it is considered dead
	ReadTimeout = 90 * time.Second
)
