package httpkit

import (
	"net/http"
	"time"

	"cobrify/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORS       middleware.CORSOptions
	SlowLog    time.Duration
	QuietPaths []string
}

// RootStack runs before routing, so probes never reach the api chain
func RootStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.Heartbeat("/health")}
}

// CommonStack is the /api chain; request timeouts are per route so streams stay open
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowLog, Skip: o.QuietPaths}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(o.CORS),
	}
}
