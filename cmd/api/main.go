package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Logging
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Move cache (optional)
	engineOpts := []bot.Option{bot.WithLogger(logger)}
	if client := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
		defer client.Close()
		engineOpts = append(engineOpts, bot.WithCache(redis.NewMoveCache(client), cfg.MoveCacheTTL))
	}

	// 3. Services
	engine := bot.NewEngine(cfg.SearchDepth, engineOpts...)
	sessionManager := game.NewSessionManager(engine, logger)
	difficulty := bot.ParseDifficulty(cfg.DefaultDifficulty)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTime, logger)
	go cleanupWorker.Run(ctx)

	// 5. Handlers
	gameHandler := &transportHttp.GameHandler{
		SessionManager:    sessionManager,
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.GameTokenTTL,
		SecureCookies:     cfg.IsProduction(),
		DefaultDifficulty: difficulty,
	}
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager, cfg.JWTSecret, cfg.GameTokenTTL, difficulty, logger)

	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		Logger:         logger,
	}, gameHandler, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Int("depth", engine.Depth()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
