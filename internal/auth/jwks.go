package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/saswath-06/roommait/internal/store"
)

// JSONWebKey one entry of a JWKS document. Only RSA keys are usable.
type JSONWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg,omitempty"`
	Use string `json:"use,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeySet JWKS document.
type KeySet struct {
	Keys []JSONWebKey `json:"keys"`
}

// Find the key with the given kid, or nil.
func (s *KeySet) Find(kid string) *JSONWebKey {
	if s == nil {
		return nil
	}
	for i := range s.Keys {
		if s.Keys[i].Kid == kid {
			return &s.Keys[i]
		}
	}
	return nil
}

// RSAPublicKey decodes the base64url modulus and exponent.
func (k JSONWebKey) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("key %q: unsupported kty %q", k.Kid, k.Kty)
	}
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("key %q: bad modulus: %w", k.Kid, err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("key %q: bad exponent: %w", k.Kid, err)
	}
	e := new(big.Int).SetBytes(eb)
	if len(nb) == 0 || !e.IsInt64() || e.Int64() < 3 || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("key %q: invalid RSA parameters", k.Kid)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: int(e.Int64())}, nil
}

// KeySource yields the provider's current key set. refresh bypasses any
// cache, used when a token names an unknown kid (key rotation).
type KeySource interface {
	KeySet(ctx context.Context, refresh bool) (*KeySet, error)
}

// MinForcedRefreshInterval bounds how often an unknown kid may bypass the
// cache.
const MinForcedRefreshInterval = 30 * time.Second

// HTTPKeySource fetches the JWKS over HTTPS and caches the raw document in
// a KV store. Forced refreshes beyond one per MinForcedRefreshInterval are
// served from the cache.
type HTTPKeySource struct {
	url        string
	httpClient *resty.Client
	cache      store.KV
	ttl        time.Duration
	refreshes  *rate.Limiter
	logger     *zap.Logger

	mu   sync.RWMutex
	last *KeySet
}

var _ KeySource = (*HTTPKeySource)(nil)

func NewHTTPKeySource(url string, timeout, ttl time.Duration, cache store.KV, logger *zap.Logger) *HTTPKeySource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(1).
		SetHeader("Accept", "application/json")
	return &HTTPKeySource{
		url:        url,
		httpClient: client,
		cache:      cache,
		ttl:        ttl,
		refreshes:  rate.NewLimiter(rate.Every(MinForcedRefreshInterval), 1),
		logger:     logger,
	}
}

func (s *HTTPKeySource) cacheKey() string {
	return "auth:jwks:" + s.url
}

func (s *HTTPKeySource) KeySet(ctx context.Context, refresh bool) (*KeySet, error) {
	if refresh && !s.refreshes.Allow() {
		s.logger.Debug("JWKS refresh throttled, serving cached key set", zap.String("url", s.url))
		if set := s.lastSet(); set != nil {
			return set, nil
		}
		refresh = false
	}

	if !refresh && s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cacheKey())
		switch {
		case err == nil:
			var set KeySet
			if jerr := json.Unmarshal([]byte(raw), &set); jerr == nil {
				return &set, nil
			}
			s.logger.Warn("Discarding unreadable cached JWKS")
		case !errors.Is(err, store.ErrMiss):
			s.logger.Warn("JWKS cache read failed", zap.Error(err))
		}
	}

	resp, err := s.httpClient.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch JWKS: status %d", resp.StatusCode())
	}

	var set KeySet
	if err := json.Unmarshal(resp.Body(), &set); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}
	if len(set.Keys) == 0 {
		return nil, fmt.Errorf("JWKS at %s has no keys", s.url)
	}

	s.mu.Lock()
	s.last = &set
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey(), string(resp.Body()), s.ttl); err != nil {
			s.logger.Warn("JWKS cache write failed", zap.Error(err))
		}
	}
	s.logger.Debug("Fetched JWKS", zap.String("url", s.url), zap.Int("key_count", len(set.Keys)))
	return &set, nil
}

func (s *HTTPKeySource) lastSet() *KeySet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
