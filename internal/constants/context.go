package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// Context Keys for request tracking and metadata
const (
	CtxKeyRequestID ContextKey = "request_id"
)

// Gin context keys set by the session middleware
const (
	GinKeyUser   = "current_user"
	GinKeyUserID = "user_id"
)
