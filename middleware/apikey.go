package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

func validAPIKey(c *gin.Context, expected string) bool {
	got := c.GetHeader("X-API-KEY")
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}
