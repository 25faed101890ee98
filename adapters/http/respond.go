package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medplant/plantgate/domain/gateway"
	"github.com/medplant/plantgate/domain/session"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRaw writes an upstream payload through verbatim.
func writeRaw(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// passthrough relays a token-scoped upstream read and writes the
// payload through verbatim.
func (h *Handler) passthrough(w http.ResponseWriter, r *http.Request, call func(context.Context, session.Token) (json.RawMessage, error)) {
	payload, err := call(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, payload)
}

// writeError converts any error into a well-formed JSON error response.
// Unknown errors collapse to a generic 500; internal detail never
// reaches the body.
func writeError(w http.ResponseWriter, err error) {
	gerr := gateway.AsError(err)
	writeJSON(w, gerr.Status, errorBody{
		Message: gerr.Message,
		Errors:  gerr.Details,
	})
}
