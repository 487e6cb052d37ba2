package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metzakaria/vendicore-frontend-sub001/config"
)

func TestBuildAuthServiceRequiresSecret(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Auth.SessionTTL = time.Hour

	_, err := BuildAuthService(AuthServiceConfig{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session signing secret")
}

func TestBuildAuthServiceWithSecret(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Auth.SessionSecret = "bootstrap-test-secret"
	cfg.Auth.SessionTTL = time.Hour

	svc, err := BuildAuthService(AuthServiceConfig{Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, svc)
}
