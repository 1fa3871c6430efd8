package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garagehub/garagehub-api/config"
	"github.com/garagehub/garagehub-api/logger"
	"github.com/garagehub/garagehub-api/utils"
)

// CustomClaims contains the custom claims we read from staff tokens.
type CustomClaims struct {
	Scope string `json:"scope"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate does nothing beyond satisfying validator.CustomClaims.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether our claims have a specific scope.
func (c CustomClaims) HasScope(expected string) bool {
	for _, s := range strings.Fields(c.Scope) {
		if s == expected {
			return true
		}
	}
	return false
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
// Token issuance is external; this layer only validates and exposes the
// subject. Which staff account (and tenant) the subject maps to is resolved
// afterwards against the tenant context.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
	if err != nil {
		logger.Get().Fatal("failed to parse issuer url", zap.Error(err))
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Auth0Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		logger.Get().Fatal("failed to set up jwt validator", zap.Error(err))
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Get().Warn("jwt validation failed", zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		//nolint:errcheck
		w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`))
	}

	check := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			// The sub claim identifies the staff account at the identity
			// provider. It is tenant-agnostic until resolved against the
			// users table.
			c.Set("auth_id", token.RegisteredClaims.Subject)
			c.Set("validated_claims", token)

			c.Next()
		}

		check.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
	}
}

// GetAuthID extracts the authenticated subject from the Gin context
func GetAuthID(c *gin.Context) (string, error) {
	authID, exists := c.Get("auth_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_AUTH_ID", Message: "Authenticated subject not found in context"}
	}

	authIDStr, ok := authID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_AUTH_ID", Message: "Authenticated subject is not a string"}
	}

	return authIDStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get("validated_claims")
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// RequireScope is a middleware that checks if the token has a specific scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "MISSING_CLAIMS", "Could not retrieve token claims")
			c.Abort()
			return
		}

		customClaims, ok := claims.CustomClaims.(*CustomClaims)
		if !ok || !customClaims.HasScope(scope) {
			utils.RespondError(c, http.StatusForbidden, "INSUFFICIENT_SCOPE", "Insufficient permissions to access this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
