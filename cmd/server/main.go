package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/groomingco/edge-voice-service/internal/config"
	"github.com/groomingco/edge-voice-service/internal/handler"
	"github.com/groomingco/edge-voice-service/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Server is the Edge voice webhook server.
type Server struct {
	config         *config.Config
	router         *mux.Router
	handlerManager *handler.HandlerManager
}

// NewServer wires the router and all handlers.
func NewServer(cfg *config.Config) (*Server, error) {
	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	router := mux.NewRouter()

	handlerManager, err := handler.NewHandlerManager(cfg)
	if err != nil {
		return nil, err
	}
	handlerManager.SetupAllRoutes(router)

	return &Server{
		config:         cfg,
		router:         router,
		handlerManager: handlerManager,
	}, nil
}

// Start serves HTTP until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Base().Info("starting server", zap.String("addr", addr))
	return server.ListenAndServe()
}

func main() {
	// Load .env for local development; in production the environment is
	// set by the deployment and the file is simply absent.
	if err := godotenv.Load(); err != nil {
		log.Printf("info: .env file not found or skipped: %v", err)
	}

	cfg := config.LoadFromEnv()

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	defer logger.Sync()

	logger.Base().Info("server initialized",
		zap.String("port", cfg.Port),
		zap.String("instance_id", cfg.InstanceID),
		zap.Bool("sms_enabled", cfg.SMSEnabled()),
	)

	if err := server.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
