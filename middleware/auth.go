package middleware

import (
	"strings"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/Traorelacina/Glory-event/auth"
	"github.com/Traorelacina/Glory-event/response"
	"github.com/gin-gonic/gin"
)

// ValidateToken gates admin routes. It accepts "Authorization: Bearer <jwt>",
// or the X-API-KEY header when an API key is configured.
func ValidateToken(issuer *auth.Issuer, apiKey string) gin.HandlerFunc {
	return gate(issuer, apiKey, false)
}

// ValidateUpgradeToken is ValidateToken for WebSocket upgrades. Browsers
// cannot set headers on an upgrade request, so it also reads the JWT from
// the "token" query parameter. Mount it on upgrade routes only.
func ValidateUpgradeToken(issuer *auth.Issuer, apiKey string) gin.HandlerFunc {
	return gate(issuer, apiKey, true)
}

func gate(issuer *auth.Issuer, apiKey string, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && validAPIKey(c, apiKey) {
			auth.SetSession(c, &auth.Session{Role: "admin", Method: "api_key"})
			c.Next()
			return
		}

		tokenString := bearerToken(c)
		if tokenString == "" && allowQuery {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Error(c, apperror.Unauthorized("En-tête Authorization manquant"))
			return
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			response.Error(c, err)
			return
		}

		auth.SetSession(c, &auth.Session{
			AdminID: claims.AdminID,
			Email:   claims.Email,
			Role:    claims.Role,
			Method:  "token",
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, prefix))
	}
	return ""
}
