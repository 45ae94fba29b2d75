// README: Chat handlers (session bootstrap + per-turn dialogue).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelai/internal/modules/planner"
	"travelai/internal/modules/session"
)

// turnTimeout bounds one turn end to end; a turn may hold two sequential
// model calls plus a lookup.
const turnTimeout = 60 * time.Second

type ChatHandler struct {
	planner *planner.Service
	log     *zap.Logger
}

func NewChatHandler(plannerSvc *planner.Service, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{planner: plannerSvc, log: log}
}

type initializeReq struct {
	UserID string `json:"userId"`
}

// initializeResp mirrors the JSON layout the frontend already consumes.
type initializeResp struct {
	ChatHistory []string       `json:"chat_history"`
	CurrentJSON map[string]any `json:"current_json"`
	Options     []string       `json:"options"`
}

// Initialize handles POST /api/initialize. Idempotent session bootstrap.
func (h *ChatHandler) Initialize(c *gin.Context) {
	var req initializeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)

	sess, err := h.planner.Initialize(c.Request.Context(), req.UserID)
	if err != nil {
		writeTurnError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, initializeResp{
		ChatHistory: sess.Transcript,
		CurrentJSON: sess.State,
		Options:     sess.Options,
	})
}

type chatReq struct {
	UserID    string `json:"userId"`
	UserInput string `json:"userInput"`
}

type chatResp struct {
	CurrentJSON map[string]any `json:"current_json"`
	NextReply   string         `json:"next_reply"`
	Options     []string       `json:"options"`
}

// Chat handles POST /api/chat: one dialogue turn.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(c, http.StatusBadRequest, session.ErrBadRequest.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	outcome, err := h.planner.RunTurn(ctx, req.UserID, req.UserInput)
	if err != nil {
		h.log.Warn("turn failed", zap.String("user_id", req.UserID), zap.Error(err))
		writeTurnError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, chatResp{
		CurrentJSON: outcome.State,
		NextReply:   outcome.Reply,
		Options:     outcome.Options,
	})
}
