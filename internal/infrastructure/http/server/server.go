package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"poscore/internal/infrastructure/http/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(tabHandler *handlers.TabHandler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", zap.Error(err))
	}
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	server := &Server{
		logger: logger,
		router: r,
	}
	server.setupRoutes(*tabHandler)
	return server
}

func (s *Server) setupRoutes(tabHandler handlers.TabHandler) {
	s.router.GET("/tabs", tabHandler.List)
	s.router.POST("/tabs", tabHandler.Open)
	s.router.POST("/tabs/:tab_id/activate", tabHandler.Activate)
	s.router.DELETE("/tabs/:tab_id", tabHandler.Close)

	s.router.POST("/refresh/:category", tabHandler.Refresh)
	s.router.GET("/panels/:panel_id", tabHandler.PanelState)
}

func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second}
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
