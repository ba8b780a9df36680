package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a client is configured.
// The error is returned as-is so callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	report(ctx, err)

	return err
}

// HandleHTTP logs the error and writes a JSON error response of the form {"error": message}.
// Only 5xx responses are logged at error level and reported; 4xx are caller mistakes.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, message string) {
	if err == nil {
		return
	}

	if statusCode >= http.StatusInternalServerError {
		_ = Handle(ctx, err, "HTTP error")
	} else {
		logging.From(ctx).Info("HTTP client error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	WriteJSONError(w, statusCode, message)
}

// WriteJSONError writes {"error": message} with the given status code
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		http.Error(w, message, statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}
