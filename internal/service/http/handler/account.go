package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/vector-hub/config"
	"github.com/reusedev/vector-hub/internal/modules/credential"
	"github.com/reusedev/vector-hub/internal/modules/logs"
	"github.com/reusedev/vector-hub/internal/modules/vectorize"
	"github.com/reusedev/vector-hub/internal/service/http/handler/response"
)

// Account relays the upstream account endpoint: upstream status code and
// JSON body pass through verbatim.
func Account(c *gin.Context) {
	pair, ok := credential.Resolve()
	if !ok {
		c.JSON(http.StatusInternalServerError, response.CredentialsMissing)
		return
	}
	status, body, err := vectorize.NewAccountRequester(c.Request.Context(), pair, config.GConfig.BaseURL).Do()
	if err != nil {
		logs.Logger.Err(err).Msg("account request failed")
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}
	c.Data(status, "application/json", body)
}
