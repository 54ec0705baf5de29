package constants

import "time"

const (
	// timeout applied to every upstream fetch; the store itself enforces none
	BACKEND_REQUEST_TIMEOUT = 10 * time.Second

	SESSION_TOKEN_TTL = 24 * time.Hour

	WEBSOCKET_WRITE_TIMEOUT = 5 * time.Second
	WEBSOCKET_SEND_BUFFER   = 16
)
