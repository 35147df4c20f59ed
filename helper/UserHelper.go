package helper

import (
	"github.com/gin-gonic/gin"
)

const ClaimsKey = "claims"

// CurrentClaims returns the claims stored by the auth middleware.
func CurrentClaims(c *gin.Context) (*Claims, error) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, Unauthorized("Not authenticated.")
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil, Unauthorized("Not authenticated.")
	}
	return claims, nil
}

// CurrentUserID is the id embedded in the caller's token.
func CurrentUserID(c *gin.Context) (string, error) {
	claims, err := CurrentClaims(c)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}
