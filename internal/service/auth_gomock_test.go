package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/domain/model"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/mocks"
	authmocks "github.com/metzakaria/vendicore-frontend-sub001/internal/mocks/auth"
)

// Verifies the exact sequence of store calls during a successful login
// using the generated mock, including the post-verify timestamp touch.
func TestLoginStoreCallSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAccountStore(ctrl)
	account := model.Account{
		ID:           "acct-9",
		Email:        "ops@example.com",
		DisplayName:  "Ops",
		PasswordHash: "stored",
		IsActive:     true,
		IsStaff:      true,
	}

	store.EXPECT().FindActiveByEmail(gomock.Any(), "ops@example.com").Return(account, nil)
	store.EXPECT().TouchLastLogin(gomock.Any(), "acct-9").Return(nil)
	store.EXPECT().MerchantIDForAccount(gomock.Any(), "acct-9").Return("", nil)

	svc := NewAuthService(AuthServiceOptions{
		Accounts: store,
		Verifier: &authmocks.StubVerifier{Secret: testSecret},
		Tokens:   authmocks.NewStubTokenCodec(),
	})

	res, err := svc.Login(context.Background(), "ops@example.com", testSecret)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, res.Role)
	assert.Empty(t, res.MerchantID)
}

// A wrong secret must stop before any merchant lookup or timestamp write.
func TestLoginWrongSecretStopsAfterLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAccountStore(ctrl)
	store.EXPECT().FindActiveByEmail(gomock.Any(), "ops@example.com").Return(model.Account{
		ID:           "acct-9",
		Email:        "ops@example.com",
		PasswordHash: "stored",
		IsActive:     true,
	}, nil)

	svc := NewAuthService(AuthServiceOptions{
		Accounts: store,
		Verifier: &authmocks.StubVerifier{Secret: testSecret},
		Tokens:   authmocks.NewStubTokenCodec(),
	})

	_, err := svc.Login(context.Background(), "ops@example.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
