/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to the message and HTTP status sent to clients.
*/
package errs

import "net/http"

// errorMap holds the CustomError template for each application error code.
// Status 0 means 400 Bad Request.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusUnprocessableEntity},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process submitted form."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Homepage and Stream Errors
	ErrUserNotFound:      {Code: ErrUserNotFound, Message: "User not found", Status: http.StatusNotFound},
	ErrStreamUnsupported: {Code: ErrStreamUnsupported, Message: "Streaming unsupported", Status: http.StatusInternalServerError},

	// 3xxx: Authentication and Session Errors
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Unauthorized", Status: http.StatusUnauthorized},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid credentials", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
