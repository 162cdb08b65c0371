package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/internal/modules/session"
	"github.com/reusedev/vector-hub/internal/service/http/handler/response"
)

// SessionAuth guards proxied routes behind the login gate. With the gate
// unconfigured every request passes.
func SessionAuth(gate *session.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.Authenticated(c.GetHeader(consts.SessionTokenHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.SessionRequired)
			return
		}
		c.Next()
	}
}
