package http

import (
	"context"
	"net/http"

	"github.com/medplant/plantgate/domain/gateway"
	"github.com/medplant/plantgate/domain/session"
)

type contextKey int

const tokenKey contextKey = iota

// RequireSession gates protected operations. A missing session cookie
// short-circuits with 401 before any upstream call is made.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := h.sessionToken(r)
		if !ok {
			if h.metrics != nil {
				h.metrics.AuthFailures.WithLabelValues("missing_session").Inc()
			}
			writeError(w, gateway.ErrAuthRequired())
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken reads the session credential from the cookie jar.
// Absence is a signal, not an error.
func (h *Handler) sessionToken(r *http.Request) (session.Token, bool) {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return session.Token(cookie.Value), true
}

// tokenFrom returns the session token stored by RequireSession.
func tokenFrom(ctx context.Context) session.Token {
	token, _ := ctx.Value(tokenKey).(session.Token)
	return token
}

// setSessionCookie issues the session cookie. The value is the
// upstream-issued bearer token, verbatim. HttpOnly always; Secure per
// deployment config; explicit max-age so the session survives browser
// restarts until it expires upstream.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token session.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    string(token),
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}

// clearSessionCookie removes the session cookie.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}
