package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/vector-hub/config"
	"github.com/reusedev/vector-hub/internal/modules/credential"
	"github.com/reusedev/vector-hub/internal/modules/logs"
	"github.com/reusedev/vector-hub/internal/modules/metrics"
	"github.com/reusedev/vector-hub/internal/modules/vectorize"
	"github.com/reusedev/vector-hub/internal/service/http/handler/request"
	"github.com/reusedev/vector-hub/internal/service/http/handler/response"
)

// Vectorize reshapes the client form into the upstream multipart call
// and relays the classified result. Validation happens before any
// upstream contact.
func Vectorize(c *gin.Context) {
	pair, ok := credential.Resolve()
	if !ok {
		c.JSON(http.StatusInternalServerError, response.CredentialsMissing)
		return
	}
	var req request.Vectorize
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return
	}
	if err := req.Valid(); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return
	}
	module, err := req.ToModule()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		return
	}
	result, err := vectorize.NewRequester(c.Request.Context(), pair, config.GConfig.BaseURL, module).Do()
	if err != nil {
		var upstreamErr *vectorize.UpstreamError
		if errors.As(err, &upstreamErr) {
			metrics.CreditsCharged.Add(upstreamErr.CreditsCharged)
			metrics.CreditsCalculated.Add(upstreamErr.CreditsCalculated)
			c.Data(upstreamErr.StatusCode, "application/json", upstreamErr.Body)
			return
		}
		logs.Logger.Err(err).Msg("vectorize request failed")
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}
	metrics.CreditsCharged.Add(result.CreditsCharged)
	metrics.CreditsCalculated.Add(result.CreditsCalculated)
	c.JSON(http.StatusOK, result)
}
