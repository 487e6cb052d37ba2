package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/adapters/sessiontoken"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/domain/model"
	authmocks "github.com/metzakaria/vendicore-frontend-sub001/internal/mocks/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/service"
)

// End-to-end router tests with a real auth service and a real token codec;
// only the account store and password verifier are doubles.
func newTestRouter(t *testing.T) (http.Handler, *authmocks.MemoryAccountStore) {
	t.Helper()

	codec, err := sessiontoken.New(sessiontoken.Config{Secret: "router-test-secret", TTL: time.Hour})
	require.NoError(t, err)

	store := authmocks.NewMemoryAccountStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Accounts: store,
		Verifier: &authmocks.StubVerifier{Secret: "correct"},
		Tokens:   codec,
		Logger:   testLogger(),
	})

	router := NewRouter(RouterServices{
		Auth:       svc,
		SessionTTL: time.Hour,
		Logger:     testLogger(),
	})
	return router, store
}

func loginAndGetCookie(t *testing.T, router http.Handler, email string) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {email}, "password": {"correct"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRouterHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouterAdminFlow(t *testing.T) {
	router, store := newTestRouter(t)
	store.Add(model.Account{
		ID:           "acct-admin",
		Email:        "admin@example.com",
		DisplayName:  "Admin",
		PasswordHash: "stored",
		IsActive:     true,
		IsStaff:      true,
	})

	cookie := loginAndGetCookie(t, router, "admin@example.com")

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"page":"admin_dashboard"`)
	assert.Contains(t, w.Body.String(), `"account_id":"acct-admin"`)
}

func TestRouterMerchantScopeFromToken(t *testing.T) {
	router, store := newTestRouter(t)
	store.Add(model.Account{
		ID:           "acct-m",
		Email:        "shop@example.com",
		DisplayName:  "Shop",
		PasswordHash: "stored",
		IsActive:     true,
	})
	store.Link("acct-m", "merchant-55")

	cookie := loginAndGetCookie(t, router, "shop@example.com")

	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"merchant_id":"merchant-55"`)
}

func TestRouterMerchantCannotReachAdmin(t *testing.T) {
	router, store := newTestRouter(t)
	store.Add(model.Account{
		ID:           "acct-m",
		Email:        "shop@example.com",
		PasswordHash: "stored",
		IsActive:     true,
	})
	store.Link("acct-m", "merchant-55")

	cookie := loginAndGetCookie(t, router, "shop@example.com")

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, MerchantHomePath, w.Header().Get("Location"))
}

func TestRouterAnonymousRedirectedToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/merchant/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), LoginPath)
}

func TestRouterLogoutThenGateRejects(t *testing.T) {
	router, store := newTestRouter(t)
	store.Add(model.Account{
		ID:           "acct-admin",
		Email:        "admin@example.com",
		PasswordHash: "stored",
		IsActive:     true,
		IsStaff:      true,
	})

	cookie := loginAndGetCookie(t, router, "admin@example.com")

	// Logout clears the cookie client-side.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// A request without the cookie is anonymous again.
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRouterStatusReflectsSession(t *testing.T) {
	router, store := newTestRouter(t)
	store.Add(model.Account{
		ID:           "acct-admin",
		Email:        "admin@example.com",
		DisplayName:  "Admin",
		PasswordHash: "stored",
		IsActive:     true,
		IsSuperuser:  true,
	})

	cookie := loginAndGetCookie(t, router, "admin@example.com")

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"role":"superadmin"`)
}
