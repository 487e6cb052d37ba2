package httpx

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, identifier, secret string) (*service.LoginResult, error)
	SessionReader
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	SessionTTL   time.Duration
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the JSON body accepted by POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the credential login endpoint.
// POST /auth/login, accepting either a JSON body or a standard form post.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	identifier, secret, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.Svc.Login(r.Context(), identifier, secret)
	if err != nil {
		h.writeLoginFailure(w, r, err)
		return
	}

	h.setSessionCookie(w, r, result.Token)

	home := result.Role.HomePath()
	destination := home
	if redirect := r.FormValue("redirect_uri"); redirect != "" {
		destination = safeRedirectPath(redirect)
	}
	if destination == "" || destination == "/" {
		destination = home
	}
	if destination == "" {
		// The User role has no landing page.
		destination = LoginPath
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, destination, http.StatusSeeOther)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"token":       result.Token,
		"role":        result.Role,
		"merchant_id": result.MerchantID,
		"home":        home,
	})
}

// readCredentials extracts the identifier/secret pair from a JSON or form body.
func (h *AuthHandlers) readCredentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req loginRequest
		if !DecodeJSON(w, r, &req) {
			return "", "", false
		}
		return req.Email, req.Password, true
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return "", "", false
	}
	return r.PostFormValue("email"), r.PostFormValue("password"), true
}

// writeLoginFailure maps service errors onto HTTP responses. Credential
// failures carry a single undifferentiated message regardless of cause.
func (h *AuthHandlers) writeLoginFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrTooManyAttempts) {
		if IsBrowserRequest(r) {
			http.Redirect(w, r, LoginPath+"?error=too_many_attempts", http.StatusSeeOther)
			return
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusTooManyRequests,
			ErrCode: "too_many_attempts",
			Err:     service.ErrTooManyAttempts,
		})
		return
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, LoginPath+"?error=invalid_credentials", http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "invalid_credentials",
		Err:     service.ErrInvalidCredentials,
	})
}

// Logout handles the logout endpoint.
// POST /auth/logout. With stateless tokens there is no server-side session to
// destroy; clearing the cookie ends the browser session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w, r)

	if IsBrowserRequest(r) {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	claims, err := h.Svc.ReadSession(cookie.Value)
	if err != nil {
		// Token is invalid or expired, clear the cookie
		h.clearSessionCookie(w, r)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"account": map[string]any{
			"id":           claims.AccountID,
			"display_name": claims.DisplayName,
			"email":        claims.Email,
			"role":         claims.Role,
			"merchant_id":  claims.MerchantID,
		},
		"expires_at": claims.ExpiresAt,
	})
}

var loginPageTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if eq .Error "invalid_credentials"}}<p>Invalid email or password.</p>{{end}}
{{if eq .Error "too_many_attempts"}}<p>Too many login attempts, try again later.</p>{{end}}
<form method="post" action="/auth/login">
<input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
<label>Email <input type="email" name="email" autocomplete="username" required></label>
<label>Password <input type="password" name="password" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

// LoginPage renders a minimal sign-in form.
// GET /login?redirect_uri=<optional>&error=<optional>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		RedirectURI string
		Error       string
	}{
		RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
		Error:       r.URL.Query().Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginPageTemplate.Execute(w, data); err != nil {
		h.logger().ErrorContext(r.Context(), "rendering login page failed", "error", err)
	}
}

// setSessionCookie writes the session token cookie with the session TTL.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	ttl := h.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clearSessionCookie clears the session cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
