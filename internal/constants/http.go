package constants

// HTTP Header Names
const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
)

// Cookie Names
const (
	CookieToken = "jwt"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized  = "Not authorized to access this route"
	MsgBadRequest    = "Invalid request"
	MsgInternalError = "Internal server error"
)
