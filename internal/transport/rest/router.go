// Package rest
package rest

import (
	"net/http"
	"time"

	"hoststatus/internal/config"
	"hoststatus/internal/logger"
)

type RouterDeps struct {
	Status *StatusHandler
	WS     http.HandlerFunc
	Log    logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authStack := NewChain()
	authStack.Use(BearerJWT(cfg))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// STATUS
	mux.Handle("GET /status", authStack.Then(http.HandlerFunc(deps.Status.Index)))
	mux.Handle("GET /status/latest", authStack.Then(http.HandlerFunc(deps.Status.Latest)))
	mux.Handle("GET /status/{name}", authStack.Then(http.HandlerFunc(deps.Status.Show)))

	// WEBSOCKET
	if deps.WS != nil {
		mux.HandleFunc("GET /ws", deps.WS)
	}

	globalStack := NewChain()
	if deps.Log != nil {
		globalStack.Use(RequestLogger(deps.Log))
	}

	return globalStack.Then(mux)
}

func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
