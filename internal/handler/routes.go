package handler

import (
	"github.com/gorilla/mux"
	"github.com/groomingco/edge-voice-service/internal/config"
	"github.com/groomingco/edge-voice-service/internal/messaging"
	"github.com/groomingco/edge-voice-service/internal/reply"
	"github.com/groomingco/edge-voice-service/internal/session"
	"github.com/groomingco/edge-voice-service/pkg/logger"
	"github.com/groomingco/edge-voice-service/pkg/redis"
	"go.uber.org/zap"
)

// HandlerManager owns the service wiring: store, adapters, and the
// handlers built on top of them.
type HandlerManager struct {
	config   *config.Config
	store    session.Store
	monitor  *session.Monitor
	replies  *reply.Adapter
	notifier messaging.Notifier
}

// NewHandlerManager creates all services and handlers from configuration.
func NewHandlerManager(cfg *config.Config) (*HandlerManager, error) {
	store := session.NewMemoryStore()

	// Optional Redis live-call registry. The service runs fully without
	// it; the authoritative call state is always the in-process store.
	var redisSvc redis.ServiceInterface
	if cfg.RedisEnabled() {
		svc, err := redis.NewService(&redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			logger.Base().Warn("failed to initialize redis, running without call registry", zap.Error(err))
		} else {
			redisSvc = svc
			logger.Base().Info("call registry initialized", zap.String("instance_id", cfg.InstanceID))
		}
	}
	monitor := session.NewMonitor(redisSvc, cfg.InstanceID)

	// Reply generation strategy: generated replies when an API key is
	// configured, fixed templates otherwise.
	var gen reply.Generator
	if cfg.OpenAIAPIKey != "" {
		gen = reply.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		logger.Base().Info("reply generation enabled", zap.String("model", cfg.OpenAIModel))
	} else {
		gen = reply.TemplateGenerator{}
		logger.Base().Warn("OPENAI_API_KEY not set, using fixed reply templates")
	}
	replies := reply.NewAdapter(gen, cfg.ReplyTimeout)

	var notifier messaging.Notifier
	if cfg.SMSEnabled() {
		notifier = messaging.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioNumber, cfg.BookingURL)
		logger.Base().Info("booking handoff enabled", zap.String("from", cfg.TwilioNumber))
	} else {
		notifier = messaging.NewNoopNotifier()
	}

	return &HandlerManager{
		config:   cfg,
		store:    store,
		monitor:  monitor,
		replies:  replies,
		notifier: notifier,
	}, nil
}

// SetupAllRoutes registers every route with the shared middleware.
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	router.Use(LoggingMiddleware)

	voiceHandler := NewVoiceHandler(hm.store, hm.monitor, hm.replies, hm.notifier, hm.config.SMSTimeout)
	voiceHandler.SetupVoiceRoutes(router)

	healthHandler := NewHealthHandler(hm.store, hm.monitor)
	healthHandler.SetupHealthRoutes(router)

	logger.Base().Info("all application routes registered")
}

// Store exposes the session store, mainly for tests.
func (hm *HandlerManager) Store() session.Store {
	return hm.store
}
