package websocket

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"hoststatus/internal/config"
	"hoststatus/internal/logger"
	"hoststatus/internal/transport/rest"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
	secret   string
}

func NewHandler(hub *Hub, log logger.Logger, cfg *config.Config) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(cfg.AllowedOrigins) == 0 {
				return true
			}

			if !slices.Contains(cfg.AllowedOrigins, origin) {
				log.Warn("websocket origin rejected", "origin", origin)
				return false
			}

			return true
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
		secret:   cfg.JWTSecret,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		token := rest.BearerToken(r)
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if _, err := rest.ValidateToken(token, h.secret); err != nil {
			h.log.Warn("jwt verification failed", "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	if !send(h.hub, h.hub.register, client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("client connected", "remote_addr", conn.RemoteAddr())
}
