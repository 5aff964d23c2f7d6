// Package auth verifies identity-provider bearer tokens.
package auth

import (
	"context"
	"strings"
	"time"
)

// Claims verified assertions from a token.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Issuer    string
	ExpiresAt time.Time
	Raw       map[string]any
}

// Identity is either Authenticated or Anonymous. Handlers switch on the
// concrete type instead of checking for a nil claims map.
type Identity interface {
	isIdentity()
}

type Authenticated struct {
	Claims Claims
}

type Anonymous struct{}

func (Authenticated) isIdentity() {}
func (Anonymous) isIdentity()     {}

// SubjectOf the subject of an authenticated identity.
func SubjectOf(id Identity) (string, bool) {
	if a, ok := id.(Authenticated); ok && a.Claims.Subject != "" {
		return a.Claims.Subject, true
	}
	return "", false
}

// SubjectPtr nil for anonymous identities; convenient for nullable columns.
func SubjectPtr(id Identity) *string {
	if sub, ok := SubjectOf(id); ok {
		return &sub
	}
	return nil
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext defaults to Anonymous.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok && id != nil {
		return id
	}
	return Anonymous{}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
