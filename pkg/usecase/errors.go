package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer. The messages are returned to HTTP clients verbatim.
var (
	ErrAPIKeyRequired  = goerr.New("API key is required")
	ErrMessageRequired = goerr.New("Message is required")
)

// UpstreamError reports a failure while talking to the completion service
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	if e.Cause == nil {
		return "Failed to get response"
	}
	return "Failed to get response: " + e.Cause.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Context keys for error values
const (
	ChatIDKey    = "chat_id"
	CaseCountKey = "case_count"
)
