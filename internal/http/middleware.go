package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
)

// SessionReader re-validates a session token and returns its claims.
// Implemented by the auth service; used by the access gate so tests can
// substitute lightweight stubs.
type SessionReader interface {
	ReadSession(token string) (domainauth.SessionClaims, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API
// requests. Downstream handlers use the context value to decide between HTML
// redirects and JSON error responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - API routes start with /api/
// 2. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}

	return strings.Contains(accept, "text/html")
}

// RequireRoles returns the access gate middleware. A request passes only when
// it carries a valid, unexpired session token whose role is in the allowed
// set. Authorization is re-evaluated on every request from the token alone;
// no server-side state is consulted.
//
// Anonymous or invalid/expired tokens: browser requests are redirected to the
// login page with the current URL as redirect_uri, API requests get 401 JSON.
// Valid token with a role outside the allowed set: browser requests are
// redirected to the role's own home page (or login when the role has none),
// API requests get 403 JSON.
func RequireRoles(svc SessionReader, roles ...domainauth.Role) func(http.Handler) http.Handler {
	allowed := make(map[domainauth.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromRequest(r, svc)
			if !ok {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !allowed[claims.Role] {
				if IsBrowserRequest(r) {
					redirectToRoleHome(w, r, claims.Role)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth places claims in the request context when a valid session
// token is present, and passes the request through either way.
func OptionalAuth(svc SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := claimsFromRequest(r, svc); ok {
				r = r.WithContext(SetClaimsInContext(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// claimsFromRequest reads the session cookie and re-validates the token.
// An absent cookie, a bad signature, and an expired token all look the same
// to callers: no claims.
func claimsFromRequest(r *http.Request, svc SessionReader) (domainauth.SessionClaims, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domainauth.SessionClaims{}, false
	}

	claims, err := svc.ReadSession(cookie.Value)
	if err != nil {
		return domainauth.SessionClaims{}, false
	}

	return claims, true
}

// redirectToLogin redirects browser requests to the login page with the
// current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	loginURL := LoginPath + "?redirect_uri=" + url.QueryEscape(redirectPath)
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// redirectToRoleHome sends an authenticated-but-unauthorized browser request
// to its own role's landing page. The User role has no destination and goes
// back to login.
func redirectToRoleHome(w http.ResponseWriter, r *http.Request, role domainauth.Role) {
	home := role.HomePath()
	if home == "" {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, home, http.StatusSeeOther)
}
