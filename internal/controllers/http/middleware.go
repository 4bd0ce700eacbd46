package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/infra"
)

const callerKey = "caller"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// AuthRequired resolves the bearer token into a caller identity and
// stores it on the request context. Requests without a valid credential
// never reach the handler.
func AuthRequired(verifier infra.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(callerKey, *identity)
		c.Next()
	}
}

func caller(c *gin.Context) domain.Identity {
	v, _ := c.Get(callerKey)
	id, _ := v.(domain.Identity)
	return id
}
