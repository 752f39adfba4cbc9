package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

// RouterConfig holds what the router needs beyond the handlers.
type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
	Logger         zerolog.Logger
}

// NewRouter wires the REST routes and mounts ws (may be nil) at /ws.
func NewRouter(cfg RouterConfig, games *GameHandler, ws http.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(cfg.Logger), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.POST("/api/games", games.CreateGame)

	protected := router.Group("/api/games/:id")
	protected.Use(middleware.GameAuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("", games.GetGame)
		protected.POST("/moves", games.MakeMove)
		protected.DELETE("", games.DeleteGame)
	}

	// auth happens inside the websocket handshake
	if ws != nil {
		router.GET("/ws", gin.WrapF(ws))
	}

	return router
}
