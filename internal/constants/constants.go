package constants

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "sessionid"
	// CSRFCookieName is readable by scripts so clients can mirror it into CSRFHeaderName.
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	SessionKeyUserID    = "user_id"
	SessionKeyCSRFToken = "csrf_token"

	// ContextKeyUserID and ContextKeyUser hold the authenticated user on the gin context.
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "user"
	ContextKeyRequestID = "request_id"

	RequestIDHeader = "X-Request-ID"

	MinPasswordLength = 8
	TopClientsLimit   = 10
)
