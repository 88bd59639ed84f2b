package constants

// WebSocket event types
const (
	EventError       = "error"
	EventPing        = "ping"
	EventPong        = "pong"
	EventSubscribed  = "subscribed"
	EventTransaction = "transaction"
)

// WebSocket error codes
const (
	ErrorInvalidFormat   = "invalid_format"
	ErrorUnknownEvent    = "unknown_event"
	ErrorFeedUnavailable = "feed_unavailable"
)
