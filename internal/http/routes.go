package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	CookieDomain string
	SessionTTL   time.Duration
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with the access gate on
// the role-scoped route groups.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		SessionTTL:   services.SessionTTL,
		Logger:       logger,
	}
	dashboards := &DashboardHandlers{}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("GET "+LoginPath, authHandlers.LoginPage)
	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Role-gated route groups. Each group declares its allowed set; the gate
	// re-checks the token on every request.
	adminGate := RequireRoles(services.Auth, domainauth.RoleSuperAdmin, domainauth.RoleAdmin)
	mux.Handle("GET /admin/dashboard", adminGate(http.HandlerFunc(dashboards.AdminDashboard)))
	mux.Handle("GET /admin/", adminGate(http.HandlerFunc(dashboards.AdminDashboard)))

	merchantGate := RequireRoles(services.Auth, domainauth.RoleMerchant)
	mux.Handle("GET /merchant/dashboard", merchantGate(http.HandlerFunc(dashboards.MerchantDashboard)))
	mux.Handle("GET /merchant/", merchantGate(http.HandlerFunc(dashboards.MerchantDashboard)))

	// Logging and panic recovery are applied by the bootstrap layer so test
	// routers stay quiet by default.
	return BrowserDetection()(mux)
}
