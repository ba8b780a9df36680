package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/secmon-lab/asclepius/pkg/usecase"
	"github.com/secmon-lab/asclepius/pkg/utils/errutil"
)

type chatRequest struct {
	APIKey      string              `json:"api_key" masq:"secret"`
	Message     string              `json:"message"`
	ChatHistory []model.ChatMessage `json:"chat_history"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// chatHandler relays one chat turn. Validation errors map to 400 and every other
// failure to 500 with the upstream cause.
func chatHandler(uc ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req chatRequest
		if status, msg, err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, status, msg)
			return
		}

		out, err := uc.Chat(ctx, usecase.ChatInput{
			APIKey:  req.APIKey,
			Message: req.Message,
			History: req.ChatHistory,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrAPIKeyRequired), errors.Is(err, usecase.ErrMessageRequired):
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, err.Error())
			default:
				var upstreamErr *usecase.UpstreamError
				if !errors.As(err, &upstreamErr) {
					upstreamErr = &usecase.UpstreamError{Cause: err}
				}
				errutil.HandleHTTP(ctx, w, upstreamErr, http.StatusInternalServerError, upstreamErr.Error())
			}
			return
		}

		writeJSON(ctx, w, http.StatusOK, chatResponse{
			Response:  out.Response,
			Timestamp: out.Timestamp.Format(time.RFC3339),
		})
	}
}

// decodeJSON reads a JSON body into v. On failure it returns the status and client message.
func decodeJSON(r *http.Request, v any) (int, string, error) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, "Request body too large",
				goerr.Wrap(err, "request body too large", goerr.V("limit", tooLarge.Limit))
		}
		return http.StatusBadRequest, "Invalid JSON body", goerr.Wrap(err, "failed to decode request body")
	}
	return http.StatusOK, "", nil
}
