package models

import "fmt"

// Error codes used for internal error handling. The code never reaches the
// wire; it only selects the HTTP status and the client-facing message.
const (
	ErrCodeMissingParameter    = "MISSING_PARAMETER"
	ErrCodeInvalidLink         = "INVALID_LINK"
	ErrCodeUpstreamFetchFailed = "UPSTREAM_FETCH_FAILED"
	ErrCodeNoContentFound      = "NO_CONTENT_FOUND"
	ErrCodeNoDownloadItems     = "NO_DOWNLOAD_ITEMS"
	ErrCodeUnexpectedFault     = "UNEXPECTED_FAULT"
)

// Client-facing messages for each failure gate.
const (
	MsgMissingParameter    = "Please provide 'id' parameter with thread ID or full link."
	MsgInvalidLink         = "Invalid link provided. Could not extract thread ID."
	MsgUpstreamFetchFailed = "Failed to fetch page content"
	MsgNoContentFound      = "No downloadable content found"
	MsgNoDownloadItems     = "No download items found"
)

// ThreadError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ThreadError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ThreadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ThreadError) Unwrap() error {
	return e.Err
}

// NewThreadError creates a new ThreadError.
func NewThreadError(code, message string, err error) *ThreadError {
	return &ThreadError{Code: code, Message: message, Err: err}
}

// NewUnexpectedFault wraps an arbitrary failure into the catch-all kind,
// keeping its description in the client message.
func NewUnexpectedFault(err error) *ThreadError {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return &ThreadError{
		Code:    ErrCodeUnexpectedFault,
		Message: "Error occurred: " + detail,
		Err:     err,
	}
}

// ToResponse converts an internal error to the API-facing error body.
func (e *ThreadError) ToResponse() ErrorResponse {
	return ErrorResponse{OK: false, Message: e.Message}
}
