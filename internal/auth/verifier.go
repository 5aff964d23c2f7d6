package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/config"
)

var (
	// ErrNotConfigured no identity provider domain is set.
	ErrNotConfigured = errors.New("identity provider not configured")
	// ErrInvalidToken any verification failure: signature, kid, audience,
	// issuer, expiry, or keys unavailable.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier checks RS256 tokens against the provider's published keys.
type Verifier struct {
	cfg    config.AuthConfig
	keys   KeySource
	logger *zap.Logger
}

func NewVerifier(cfg config.AuthConfig, keys KeySource, logger *zap.Logger) *Verifier {
	return &Verifier{cfg: cfg, keys: keys, logger: logger}
}

func (v *Verifier) Configured() bool {
	return v != nil && v.cfg.Configured() && v.keys != nil
}

// Verify returns the token's claims. Errors wrap ErrNotConfigured or
// ErrInvalidToken.
func (v *Verifier) Verify(ctx context.Context, token string) (Claims, error) {
	if !v.Configured() {
		return Claims{}, ErrNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer()),
		jwt.WithLeeway(30 * time.Second),
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, mc, v.keyFunc(ctx))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(mc), nil
}

func (v *Verifier) keyFunc(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}

		set, err := v.keys.KeySet(ctx, false)
		if err != nil {
			return nil, err
		}
		key := set.Find(kid)
		if key == nil {
			// provider may have rotated keys since the cache was filled
			if set, err = v.keys.KeySet(ctx, true); err != nil {
				return nil, err
			}
			if key = set.Find(kid); key == nil {
				return nil, fmt.Errorf("no signing key for kid %q", kid)
			}
		}
		return key.RSAPublicKey()
	}
}

func claimsFromMap(mc jwt.MapClaims) Claims {
	c := Claims{Raw: map[string]any(mc)}
	c.Subject, _ = mc.GetSubject()
	c.Issuer, _ = mc.GetIssuer()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	c.Email, _ = mc["email"].(string)
	c.Name, _ = mc["name"].(string)
	return c
}
