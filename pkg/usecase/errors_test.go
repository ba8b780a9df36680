package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/asclepius/pkg/usecase"
)

func TestErrors_ClientMessages(t *testing.T) {
	gt.Value(t, usecase.ErrAPIKeyRequired.Error()).Equal("API key is required")
	gt.Value(t, usecase.ErrMessageRequired.Error()).Equal("Message is required")
}

func TestUpstreamError(t *testing.T) {
	t.Run("message carries cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &usecase.UpstreamError{Cause: cause}

		gt.Value(t, err.Error()).Equal("Failed to get response: connection refused")
		gt.Error(t, err).Is(cause)
	})

	t.Run("nil cause", func(t *testing.T) {
		err := &usecase.UpstreamError{}
		gt.Value(t, err.Error()).Equal("Failed to get response")
	})

	t.Run("found through wrapping", func(t *testing.T) {
		var wrapped error = errors.Join(errors.New("outer"), &usecase.UpstreamError{Cause: errors.New("boom")})

		var upstreamErr *usecase.UpstreamError
		gt.Bool(t, errors.As(wrapped, &upstreamErr)).True()
		gt.Value(t, upstreamErr.Cause.Error()).Equal("boom")
	})
}
