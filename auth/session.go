package auth

import "github.com/gin-gonic/gin"

const sessionKey = "auth.session"

// Session is the admin identity resolved for the current request.
// Handlers read it from the gin context instead of any global state.
type Session struct {
	AdminID uint
	Email   string
	Role    string
	Method  string // "token" or "api_key"
}

func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}

func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}
