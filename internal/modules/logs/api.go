package logs

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/reusedev/vector-hub/config"
	"github.com/rs/zerolog"
)

// Logger is a no-op until InitLogger runs, so library code and tests can
// log without configuration.
var (
	Logger = zerolog.Nop()
)

func InitLogger() {
	cfg := config.GConfig

	level := parseLogLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer

	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
	}
	writers = append(writers, logFile)

	if level <= zerolog.DebugLevel {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	}

	multiWriter := io.MultiWriter(writers...)

	Logger = zerolog.New(multiWriter).With().Timestamp().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
