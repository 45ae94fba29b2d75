// README: API gateway; registers HTTP routes and delegates to services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelai/internal/http/handlers"
	"travelai/internal/http/middleware"
	"travelai/internal/modules/planner"
)

type ServerDeps struct {
	Planner *planner.Service
	Logger  *zap.Logger
}

type Server struct {
	chat *handlers.ChatHandler
	log  *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		chat: handlers.NewChatHandler(deps.Planner, log),
		log:  log,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/initialize", s.chat.Initialize)
	api.POST("/chat", s.chat.Chat)

	return r
}
