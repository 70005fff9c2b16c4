package cpm

import "context"

// Cookie is a stored session cookie for a judge host.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionService persists login sessions between runs.
type SessionService interface {
	// SaveCookies replaces the stored cookies for host.
	SaveCookies(ctx context.Context, host string, cookies []*Cookie) error

	// FindCookies returns the stored cookies for host.
	// Returns an empty slice when no session is stored.
	FindCookies(ctx context.Context, host string) ([]*Cookie, error)

	// DeleteCookies removes the stored session for host.
	DeleteCookies(ctx context.Context, host string) error
}
