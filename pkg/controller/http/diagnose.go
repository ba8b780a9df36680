package http

import (
	"net/http"

	"github.com/secmon-lab/asclepius/pkg/utils/errutil"
)

type diagnoseRequest struct {
	Symptoms string `json:"symptoms"`
}

type diagnoseResponse struct {
	Result     string  `json:"result"`
	Matched    bool    `json:"matched"`
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
}

// diagnoseHandler matches the submitted symptoms. Every input yields 200 with either a
// diagnosis or the decline message.
func diagnoseHandler(uc DiagnosisUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req diagnoseRequest
		if status, msg, err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(ctx, w, err, status, msg)
			return
		}

		d := uc.Match(req.Symptoms)
		resp := diagnoseResponse{
			Result:     d.Message(),
			Matched:    d.Matched,
			Confidence: d.Confidence,
		}
		if d.Matched && d.Case != nil {
			resp.Diagnosis = d.Case.Diagnosis
		}

		writeJSON(ctx, w, http.StatusOK, resp)
	}
}
