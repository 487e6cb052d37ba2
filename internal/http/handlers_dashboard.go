package httpx

import (
	"net/http"
)

// DashboardHandlers serves the role-scoped landing pages. They exist to give
// each role a destination behind the access gate; real pages would replace
// the JSON payloads without touching the gate.
type DashboardHandlers struct{}

// AdminDashboard handles GET /admin/dashboard for SuperAdmin and Admin roles.
func (h *DashboardHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r.Context())
	if !ok {
		// The gate always runs first; reaching here without claims is a wiring bug.
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     http.ErrNoCookie,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"page":         "admin_dashboard",
		"account_id":   claims.AccountID,
		"display_name": claims.DisplayName,
		"role":         claims.Role,
	})
}

// MerchantDashboard handles GET /merchant/dashboard for the Merchant role.
// The merchant scope comes from the token claims, never from the request.
func (h *DashboardHandlers) MerchantDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     http.ErrNoCookie,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"page":         "merchant_dashboard",
		"account_id":   claims.AccountID,
		"display_name": claims.DisplayName,
		"role":         claims.Role,
		"merchant_id":  claims.MerchantID,
	})
}
