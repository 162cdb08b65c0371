package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/reusedev/vector-hub/config"
	"github.com/reusedev/vector-hub/internal/modules/logs"
	"github.com/reusedev/vector-hub/internal/modules/session"
	"github.com/reusedev/vector-hub/internal/service/http"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", "", "listen http port, overrides config")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	_ = godotenv.Load()
	config.Init(configPath)
	logs.InitLogger()
	gate := session.NewGate(config.GConfig.Username, config.GConfig.Password, config.GConfig.SessionExpireDuration())
	if httpPort == "" {
		httpPort = config.GConfig.Listen
	}
	http.Serve(httpPort, gate)
}
