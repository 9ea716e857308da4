/*
Package resp provides helpers for writing the JSON bodies returned by the API routes.

Successful mutations answer {"status":"success"}; failures answer
{"error": <message>, "code": <business code>} with the error's HTTP status.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"livefeed/internal/pkg/errs"
	"livefeed/internal/pkg/logx"
)

// StatusResponse is the body of a successful API call.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of a failed API call.
type ErrorResponse struct {
	// Error is the client-facing error message.
	Error string `json:"error"`

	// Code is the business error code (see errs package).
	Code int `json:"code"`
}

// RespondJSON sets the JSON headers and writes payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess writes {"status":"success"} with HTTP 200.
func RespondSuccess(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, StatusResponse{Status: "success"})
}

// RespondError writes the error body for customErr with its HTTP status.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := ErrorResponse{
		Error: customErr.Message,
		Code:  customErr.Code,
	}
	RespondJSON(w, r, customErr.Status, res)
}
