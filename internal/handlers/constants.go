package handlers

// Shared client-facing error messages.
const (
	ErrMsgUnauthorized       = "Authentication required"
	ErrMsgForbidden          = "You do not have access to this resource"
	ErrMsgNotFound           = "Resource not found"
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgInternalServer     = "Something went wrong, please try again later"
)
