package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"propertypulse/internal/middleware"
)

const stateCookieName = "oauth_state"

// GoogleLogin redirects to the Google consent page with a fresh CSRF state.
func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.AuthService.LoginURL(state), http.StatusFound)
}

// GoogleCallback completes the sign-in: it verifies the CSRF state, exchanges
// the code, creates the user on first sign-in and sets the session cookie.
func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, "invalid oauth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	_, token, err := h.AuthService.HandleCallback(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Consume the state cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionDuration / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.Cfg.SiteURL, http.StatusFound)
}

// Me returns the user document behind the current session.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.CurrentUser(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

// Logout clears the session cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, MessageResponse{Message: "signed out"}, http.StatusOK)
}
