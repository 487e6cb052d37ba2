package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Precedence(t *testing.T) {
	// Every combination of the two flags and the merchant link must
	// resolve to exactly one role, first match winning.
	cases := []struct {
		name       string
		superuser  bool
		staff      bool
		merchantID string
		wantRole   Role
		wantScope  string
	}{
		{"superuser only", true, false, "", RoleSuperAdmin, ""},
		{"superuser and staff", true, true, "", RoleSuperAdmin, ""},
		{"superuser with merchant link", true, false, "m-1", RoleSuperAdmin, ""},
		{"all three", true, true, "m-1", RoleSuperAdmin, ""},
		{"staff only", false, true, "", RoleAdmin, ""},
		{"staff with merchant link", false, true, "m-1", RoleAdmin, ""},
		{"merchant link only", false, false, "m-1", RoleMerchant, "m-1"},
		{"no flags no link", false, false, "", RoleUser, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := Identity{AccountID: "a-1", IsSuperuser: tc.superuser, IsStaff: tc.staff}
			role, scope := Resolve(id, tc.merchantID)
			assert.Equal(t, tc.wantRole, role)
			assert.Equal(t, tc.wantScope, scope)
		})
	}
}

func TestRole_Outranks(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Outranks(RoleAdmin))
	assert.True(t, RoleAdmin.Outranks(RoleMerchant))
	assert.True(t, RoleMerchant.Outranks(RoleUser))
	assert.False(t, RoleUser.Outranks(RoleUser), "outranks must be strict")
	assert.False(t, Role("bogus").Outranks(RoleUser), "unknown roles rank below everything")
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleMerchant, RoleUser} {
		assert.True(t, r.Valid(), "role %q", r)
	}
	assert.False(t, Role("guest").Valid(), "undefined role must not be valid")
}

func TestRole_HomePath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleSuperAdmin.HomePath())
	assert.Equal(t, "/admin/dashboard", RoleAdmin.HomePath())
	assert.Equal(t, "/merchant/dashboard", RoleMerchant.HomePath())
	assert.Empty(t, RoleUser.HomePath(), "user role has no destination")
}

func TestSessionClaims_Expired(t *testing.T) {
	now := time.Now()
	c := SessionClaims{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, c.Expired(now), "claims should not be expired before ExpiresAt")
	assert.True(t, c.Expired(now.Add(time.Minute)), "claims expire exactly at ExpiresAt")
}
