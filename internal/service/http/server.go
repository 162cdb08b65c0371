package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reusedev/vector-hub/internal/modules/session"
	"github.com/reusedev/vector-hub/internal/service/http/handler"
	"github.com/reusedev/vector-hub/internal/service/http/middleware"
)

func Serve(port string, gate *session.Gate) {
	e := gin.New()
	InitRouter(e, gate)
	if err := e.Run(port); err != nil {
		panic(err)
	}
}

func InitRouter(e *gin.Engine, gate *session.Gate) {
	e.Use(gin.Recovery())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(cors.Default())

	auth := handler.NewAuth(gate)
	api := e.Group("/api")
	authGroup := api.Group("/auth")
	{
		authGroup.GET("/config", auth.Config)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/logout", auth.Logout)
	}
	protected := api.Group("", middleware.SessionAuth(gate))
	{
		protected.GET("/account", handler.Account)
		protected.POST("/vectorize", handler.Vectorize)
	}

	e.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
