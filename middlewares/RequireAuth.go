package middlewares

import (
	"github.com/gin-gonic/gin"

	"matchup/helper"
)

const TokenCookie = "token"

// RequireAuth rejects requests without a valid `token` cookie and stores the
// token claims on the context for the handlers behind it.
func RequireAuth(tokens *helper.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookie)
		// when user is logged out
		if err != nil || tokenString == "" {
			abortWith(c, helper.Unauthorized("Not authenticated."))
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(helper.ClaimsKey, claims)
		c.Next()
	}
}

// abortWith leaves rendering to ErrorHandler.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
