package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/iamasit07/4-in-a-row/engine/pkg/httputil"
)

type GameHandler struct {
	SessionManager    *game.SessionManager
	JWTSecret         string
	TokenTTL          time.Duration
	SecureCookies     bool
	DefaultDifficulty bot.Difficulty
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type createGameResponse struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	State  game.State `json:"state"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

// CreateGame starts a new session against the bot and issues its token
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	difficulty := h.DefaultDifficulty
	if req.Difficulty != "" {
		difficulty = bot.ParseDifficulty(req.Difficulty)
	}

	session := h.SessionManager.CreateSession(difficulty)
	token, err := auth.GenerateGameToken(h.JWTSecret, session.GameID, h.TokenTTL)
	if err != nil {
		log.Error().Err(err).Str("game_id", session.GameID).Msg("failed to sign game token")
		_ = h.SessionManager.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	httputil.SetGameCookie(c.Writer, token, int(h.TokenTTL.Seconds()), h.SecureCookies)
	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		State:  session.Snapshot(),
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.SessionManager.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// MakeMove plays the human column and returns the bot reply with every placement
func (h *GameHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := h.SessionManager.PlayTurn(c.Request.Context(), c.Param("id"), *req.Column)
	if err != nil {
		c.JSON(StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		c.JSON(StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	httputil.ClearGameCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

// StatusForError maps game errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMove), errors.Is(err, domain.ErrColumnFull):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotYourTurn), errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
