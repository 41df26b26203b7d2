// Package server assembles the HTTP API.
//
//	@title			pypircgen API
//	@version		1.6.0
//	@description	Local API for generating and checking .pypirc credential files.
//	@license.name	MIT
//	@host			localhost:5000
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token for authentication
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pypircgen/docs"
	"pypircgen/internal/config"
	"pypircgen/internal/handlers"
	"pypircgen/pkg/auth"
	"pypircgen/pkg/middleware"
	"pypircgen/pkg/telemetry"
)

//go:generate swag init -g server.go -o ../../docs

// Server is the local credential API
type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	logger     *slog.Logger
}

// NewRouter builds the Gin engine with every route registered
func NewRouter(cfg *config.Config, handler *handlers.PypircHandler, authMiddleware *auth.Middleware, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", "panic", recovered)
		c.JSON(http.StatusInternalServerError, handlers.ErrorResponse{Error: "Internal server error"})
	}))
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	r.Use(middleware.RequestID(), middleware.Logger(logger))
	r.Use(middleware.CORS([]string{"http://localhost:" + cfg.Server.Port, "http://127.0.0.1:" + cfg.Server.Port}))

	docs.SwaggerInfo.Host = cfg.Addr()
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pypircgen",
			"version": telemetry.Version,
		})
	})

	protected := r.Group("/", authMiddleware.Handler())
	{
		protected.POST("/generate-pypirc", handler.GeneratePypirc)

		v1 := protected.Group("/api/v1")
		{
			v1.POST("/pypirc", handler.GeneratePypirc)
			v1.GET("/pypirc/check", handler.CheckPypirc)
			v1.GET("/targets", handler.ListTargets)
		}
	}

	return r
}

// New creates a server listening on the configured address
func New(cfg *config.Config, router http.Handler, logger *slog.Logger) *Server {
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "url", "http://"+s.cfg.Addr())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down API server")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
