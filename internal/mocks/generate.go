// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the auth port interfaces. Regenerate after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockAccountStore(ctrl)
//	store.EXPECT().FindActiveByEmail(gomock.Any(), "a@b.c").Return(account, nil)
package mocks

// Generate mock for AccountStore from internal/ports. Creates
// MockAccountStore with FindActiveByEmail, MerchantIDForAccount,
// TouchLastLogin.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_store_mock.go github.com/metzakaria/vendicore-frontend-sub001/internal/ports AccountStore
