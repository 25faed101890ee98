package gateway

import (
	"encoding/json"
	"net/http"
)

// upstreamErrorBody covers the shapes the upstream uses for error
// payloads. Fields are tried in a fixed priority order so the
// field-name guessing lives here and nowhere else.
type upstreamErrorBody struct {
	Message json.RawMessage `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Errors  json.RawMessage `json:"errors"`
}

// Decode normalizes a raw upstream response.
//
// A 2xx status returns the payload verbatim; a body that is not valid
// JSON on a 2xx is a broken upstream contract and maps to an internal
// failure. A 422 becomes a validation error carrying the upstream's
// detail or errors field unmodified. Any other non-2xx becomes an
// upstream error preserving the original status and status text, with
// the message taken from message, then detail, then a generic default.
func Decode(status int, statusText string, body []byte) (json.RawMessage, error) {
	if status >= 200 && status < 300 {
		if !json.Valid(body) {
			return nil, ErrInternal()
		}
		return json.RawMessage(body), nil
	}

	var parsed upstreamErrorBody
	// Parse failures on error paths are swallowed: the upstream is
	// already reporting a failure and may not speak JSON at all.
	_ = json.Unmarshal(body, &parsed)

	if status == http.StatusUnprocessableEntity {
		details := parsed.Detail
		if len(details) == 0 {
			details = parsed.Errors
		}
		return nil, &Error{
			Kind:       KindValidation,
			Status:     status,
			StatusText: statusText,
			Message:    "Validation failed",
			Details:    details,
		}
	}

	return nil, &Error{
		Kind:       KindUpstream,
		Status:     status,
		StatusText: statusText,
		Message:    errorMessage(parsed),
	}
}

func errorMessage(parsed upstreamErrorBody) string {
	if msg := asString(parsed.Message); msg != "" {
		return msg
	}
	if msg := asString(parsed.Detail); msg != "" {
		return msg
	}
	return "API request failed"
}

// asString unwraps a raw JSON value when it is a plain string.
// Structured detail values (arrays, objects) are not messages.
func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
