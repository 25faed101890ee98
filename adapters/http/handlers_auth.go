package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/medplant/plantgate/domain/gateway"
	"github.com/medplant/plantgate/domain/session"
)

// maxJSONBytes caps structured inbound bodies.
const maxJSONBytes = 1 << 20

// authResponseBody is the login/signup response for swagger docs.
type authResponseBody struct {
	Message string          `json:"message"`
	User    json.RawMessage `json:"user,omitempty"`
}

// decodeJSON reads a structured inbound body. A malformed body is a
// local 400, never an upstream call.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &gateway.Error{
			Kind:       gateway.KindValidation,
			Status:     http.StatusBadRequest,
			StatusText: http.StatusText(http.StatusBadRequest),
			Message:    "Invalid request body",
		}
	}
	return nil
}

// Login authenticates a user and issues the session cookie.
//
//	@Summary		Log in
//	@Description	Validates credentials, relays them to the upstream, and sets the session cookie from the upstream-issued token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		session.Credentials	true	"Credentials"
//	@Success		200		{object}	authResponseBody
//	@Failure		401		{object}	errorBody	"Incorrect credentials"
//	@Failure		422		{object}	errorBody	"Validation failed"
//	@Router			/api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, err)
		return
	}

	if errs := session.ValidateLogin(creds); len(errs) > 0 {
		writeError(w, gateway.ValidationError(errs))
		return
	}

	auth, err := h.upstream.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, auth.Token)
	writeJSON(w, http.StatusOK, authResponseBody{
		Message: "Login successful",
		User:    auth.User,
	})
}

// Signup registers a user and issues the session cookie.
//
//	@Summary		Sign up
//	@Description	Validates the signup payload locally, registers the user upstream, and sets the session cookie
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		session.SignupRequest	true	"Signup payload"
//	@Success		200		{object}	authResponseBody
//	@Failure		422		{object}	errorBody	"Validation failed"
//	@Router			/api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req session.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if errs := session.ValidateSignup(req); len(errs) > 0 {
		writeError(w, gateway.ValidationError(errs))
		return
	}

	auth, err := h.upstream.Signup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	message := auth.Message
	if message == "" {
		message = "User created successfully"
	}

	h.setSessionCookie(w, auth.Token)
	writeJSON(w, http.StatusOK, authResponseBody{
		Message: message,
		User:    auth.User,
	})
}

// Logout ends the session: best-effort notify upstream, guaranteed
// local cookie clear. Always succeeds from the client's point of view,
// including when no session cookie is present.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	authResponseBody
//	@Router		/api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.sessionToken(r); ok {
		// The upstream call must not delay or fail the local clear.
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.upstream.Logout(ctx, token); err != nil {
			h.logger.Warn().Err(err).Msg("upstream logout failed, clearing cookie anyway")
		}
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, authResponseBody{Message: "Successfully logged out"})
}

// ValidateSession resolves the current user for page loads.
// Upstream failures (e.g. an expired token) propagate verbatim.
//
//	@Summary	Validate session
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}	"Current user"
//	@Failure	401	{object}	errorBody
//	@Router		/api/auth/validate [get]
func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	payload, err := h.upstream.ValidateSession(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, payload)
}
