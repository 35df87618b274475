package server

import (
	"net/http"
	"time"

	"splashbot/server/domain"
	"splashbot/server/handler"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Dependencies は Route が組み立てるハンドラの依存関係です。
type Dependencies struct {
	Decider     domain.Decider
	AuthSecret  string
	IdleTimeout time.Duration
}

func Route(deps Dependencies) http.Handler {
	auth := handler.RequireBearer(deps.AuthSecret)

	mux := http.NewServeMux()
	mux.Handle("POST /{$}", auth(handler.NewDecideHandler(deps.Decider)))
	mux.Handle("GET /{$}", handler.NewLivenessHandler())
	mux.Handle("GET /healthz", handler.NewHealthHandler())
	mux.Handle("GET /ws", auth(handler.NewAcceptHandler(deps.Decider, deps.IdleTimeout)))
	return otelhttp.NewHandler(mux, "splashbot")
}
