package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/metrics"
)

// TokenVerifier is satisfied by *auth.Verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

// AuthResolver turns the Authorization header into an auth.Identity.
type AuthResolver struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewAuthResolver(verifier TokenVerifier, logger *zap.Logger) *AuthResolver {
	return &AuthResolver{verifier: verifier, logger: logger}
}

// Optional never rejects: missing, unverifiable or unconfigured tokens all
// resolve to auth.Anonymous.
func (a *AuthResolver) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.Identity(auth.Anonymous{})
		if token, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
			claims, err := a.verifier.Verify(r.Context(), token)
			switch {
			case err == nil:
				id = auth.Authenticated{Claims: claims}
			case errors.Is(err, auth.ErrNotConfigured):
				a.logger.Warn("Bearer token ignored: identity provider not configured", zap.String("path", r.URL.Path))
			default:
				metrics.RecordAuthFailure("invalid_token")
				a.logger.Debug("Bearer token rejected, continuing anonymously", zap.String("path", r.URL.Path), zap.Error(err))
			}
		}
		next(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	}
}

// Required rejects requests without verified claims.
func (a *AuthResolver) Required(next func(w http.ResponseWriter, r *http.Request, claims auth.Claims)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			metrics.RecordAuthFailure("missing_token")
			writeJSON(w, http.StatusUnauthorized, TokenRejected("authentication required"))
			return
		}
		claims, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrNotConfigured) {
				a.logger.Error("Identity provider not configured", zap.String("path", r.URL.Path))
				writeJSON(w, http.StatusInternalServerError, Fail("authentication is not configured"))
				return
			}
			metrics.RecordAuthFailure("invalid_token")
			a.logger.Info("Bearer token rejected", zap.String("path", r.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, TokenRejected("invalid or expired token"))
			return
		}
		ctx := auth.WithIdentity(r.Context(), auth.Authenticated{Claims: claims})
		next(w, r.WithContext(ctx), claims)
	}
}
