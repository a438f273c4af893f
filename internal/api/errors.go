package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/reconcile"
)

const msgInternal = "Internal server error"

type errorBody struct {
	Error           string                  `json:"error"`
	Message         string                  `json:"message,omitempty"`
	Details         []reconcile.FieldDetail `json:"details,omitempty"`
	EligibilityData any                     `json:"eligibilityData,omitempty"`
}

// route names the operation behind a handler and the error titles it
// reports.
type route struct {
	op       string
	invalid  string
	notFound string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors to statuses. Fatal error text is logged and
// never returned to the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, rt route, err error) {
	var ve *reconcile.ValidationError
	var nf *reconcile.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: rt.invalid, Details: ve.Details})
	case errors.As(err, &nf):
		body := errorBody{Error: rt.notFound, Message: nf.Message}
		if rt.notFound == "" {
			body.Error = nf.Message
		}
		if rt.op == opEligibility {
			body.EligibilityData = nf.Data
		}
		writeJSON(w, http.StatusNotFound, body)
	default:
		s.log.Error("lookup failed",
			zap.String("op", rt.op),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: msgInternal})
	}
}
