package mock

import (
	"context"

	"github.com/fwojciec/cpm"
)

var _ cpm.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of cpm.SessionService.
type SessionService struct {
	SaveCookiesFn   func(ctx context.Context, host string, cookies []*cpm.Cookie) error
	FindCookiesFn   func(ctx context.Context, host string) ([]*cpm.Cookie, error)
	DeleteCookiesFn func(ctx context.Context, host string) error
}

func (s *SessionService) SaveCookies(ctx context.Context, host string, cookies []*cpm.Cookie) error {
	return s.SaveCookiesFn(ctx, host, cookies)
}

func (s *SessionService) FindCookies(ctx context.Context, host string) ([]*cpm.Cookie, error) {
	return s.FindCookiesFn(ctx, host)
}

func (s *SessionService) DeleteCookies(ctx context.Context, host string) error {
	return s.DeleteCookiesFn(ctx, host)
}
