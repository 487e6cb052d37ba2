package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubAuthService is a func-field test double for AuthServiceInterface.
type stubAuthService struct {
	loginFunc       func(ctx context.Context, identifier, secret string) (*service.LoginResult, error)
	readSessionFunc func(token string) (domainauth.SessionClaims, error)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, secret string) (*service.LoginResult, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, identifier, secret)
	}
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) ReadSession(token string) (domainauth.SessionClaims, error) {
	if s.readSessionFunc != nil {
		return s.readSessionFunc(token)
	}
	return domainauth.SessionClaims{}, errors.New("no session")
}
