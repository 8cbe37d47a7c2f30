package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/duosplit/receipt-split-service/internal/config"
	"github.com/duosplit/receipt-split-service/internal/handler"
	"github.com/duosplit/receipt-split-service/internal/metrics"
	"github.com/duosplit/receipt-split-service/internal/middleware"
)

// Server is the HTTP server for the receipt splitting service.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
}

// NewServer creates and configures a new server instance.
func NewServer(cfg *config.Config, receiptHandler *handler.ReceiptHandler, splitHandler *handler.SplitHandler) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())

	server := &Server{
		router: router,
		config: cfg,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes(receiptHandler, splitHandler)

	return server
}

// setupRoutes configures all application routes.
func (s *Server) setupRoutes(receiptHandler *handler.ReceiptHandler, splitHandler *handler.SplitHandler) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	s.router.GET("/metrics", metrics.Handler())

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:8042/api-docs/index.html
	s.router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	// The upload form and the split page
	s.router.StaticFile("/", "./web/index.html")
	s.router.StaticFile("/split.html", "./web/split.html")
	s.router.StaticFile("/split.js", "./web/split.js")
	s.router.StaticFile("/style.css", "./web/style.css")

	// Normalized receipt images, readable by the vision model while a
	// scan is in flight
	s.router.Static("/receipts", s.config.ReceiptsDir)

	s.router.POST("/receipt", receiptHandler.UploadReceipt)

	v1 := s.router.Group("/v1")
	splitHandler.RegisterRoutes(v1)
}

// Start begins listening for requests and blocks until an interrupt
// signal triggers a graceful shutdown.
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", s.config.Port, "publicBaseURL", s.config.PublicBaseURL)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}
