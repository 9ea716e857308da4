/*
Package errs provides custom error types and application-level error code constants.

These codes identify request, session and system failures both inside the server and
in the JSON bodies returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that a required request parameter is missing or invalid.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the client exceeded the allowed request rate.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Homepage and Stream Errors
const (
	// ErrUserNotFound indicates that no homepage is registered for the requested username.
	ErrUserNotFound = 2101

	// ErrStreamUnsupported indicates that the connection cannot be flushed incrementally.
	ErrStreamUnsupported = 2201
)

// 3xxx: Authentication and Session Errors
const (
	// ErrUnauthorized indicates a missing, malformed or unknown auth cookie.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates that the username/password pair was rejected.
	ErrInvalidCredentials = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server error.
	ErrUnknown = 5000
)
