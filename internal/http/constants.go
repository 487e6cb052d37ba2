package httpx

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "vendicore_session"

// Browser-facing paths used by the access gate and auth handlers.
const (
	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath = "/login"

	// AdminHomePath and MerchantHomePath are the landing pages after login.
	AdminHomePath    = "/admin/dashboard"
	MerchantHomePath = "/merchant/dashboard"
)
