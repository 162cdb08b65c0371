package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/internal/modules/session"
	"github.com/reusedev/vector-hub/internal/service/http/handler/request"
	"github.com/reusedev/vector-hub/internal/service/http/handler/response"
)

type Auth struct {
	Gate *session.Gate
}

func NewAuth(gate *session.Gate) *Auth {
	return &Auth{Gate: gate}
}

func (h *Auth) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authRequired": h.Gate.Required()})
}

func (h *Auth) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	token, ok := h.Gate.Login(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.InvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (h *Auth) Logout(c *gin.Context) {
	h.Gate.Logout(c.GetHeader(consts.SessionTokenHeader))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
