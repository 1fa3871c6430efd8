package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, email, name string, scopes []string) *validator.ValidatedClaims {
	scopeString := ""
	for i, scope := range scopes {
		if i > 0 {
			scopeString += " "
		}
		scopeString += scope
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: scopeString,
			Email: email,
			Name:  name,
		},
	}
}

// MockAuthMiddleware stores the subject and claims the way the real JWT
// middleware does, so handlers behind it behave as if a token was validated.
func MockAuthMiddleware(authID, email, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_id", authID)
		c.Set("validated_claims", MockValidatedClaims(authID, email, name, nil))
		c.Next()
	}
}
