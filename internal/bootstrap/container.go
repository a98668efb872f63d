package bootstrap

import (
	"context"
	"fmt"
	"time"

	"interview-prep-be/internal/config"
	"interview-prep-be/internal/controller"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/repository/unitofwork"
	"interview-prep-be/internal/service"
	"interview-prep-be/pkg/events"
	"interview-prep-be/pkg/llm/factory"
	pktNats "interview-prep-be/pkg/nats"
	"interview-prep-be/pkg/ratelimit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	QuestionController controller.IQuestionController
	AiController       controller.IAiController

	// Background Services (nil when events go to NATS)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// Services bundles the core services. cmd/prepctl builds it without the
// provider and controllers.
type Services struct {
	Session   service.ISessionService
	Question  service.IQuestionService
	Reconcile service.IReconcileService
}

func NewServices(db *gorm.DB, cfg *config.Config, publisher events.Publisher, log logger.ILogger) *Services {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	return &Services{
		Session: service.NewSessionService(
			uowFactory,
			service.SessionServiceConfig{FanOutConcurrency: cfg.Session.FanOutConcurrency},
			publisher,
			log,
		),
		Question:  service.NewQuestionService(uowFactory, publisher, log),
		Reconcile: service.NewReconcileService(uowFactory, publisher, log),
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	var publisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("EVENTS", "Failed to connect to NATS, using in-process bus", map[string]interface{}{
				"error": err,
				"url":   cfg.App.NatsURL,
			})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
			sysLogger.Info("EVENTS", "Publishing domain events to NATS", map[string]interface{}{"url": cfg.App.NatsURL})
		}
	}
	if publisher == nil {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
		publisher = events.NewChannelPublisher(pubSub, events.DefaultTopic)
		c.ConsumerService = service.NewEventLogConsumer(pubSub, events.DefaultTopic, sysLogger)
		c.closers = append(c.closers, func() { _ = pubSub.Close() })
	}

	// 3. Provider Rate Limit
	limiter := newLimiter(cfg, sysLogger, c)

	// 4. LLM Provider
	apiKey, baseURL := cfg.Ai.ProviderCredentials()
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		ApiKey:   apiKey,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	sysLogger.Info("GENERATION", "Using LLM provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 5. Services
	services := NewServices(db, cfg, publisher, sysLogger)
	generationService := service.NewGenerationService(
		llmProvider,
		limiter,
		services.Session,
		service.GenerationServiceConfig{
			RequestTimeout:       cfg.Ai.RequestTimeout,
			DefaultQuestionCount: cfg.Ai.DefaultQuestionCount,
			Temperature:          cfg.Ai.GenerationTemperature,
			ExplanationMaxTokens: cfg.Ai.ExplanationMaxTokens,
		},
		sysLogger,
	)

	// 6. Controllers
	c.SessionController = controller.NewSessionController(services.Session, services.Reconcile)
	c.QuestionController = controller.NewQuestionController(services.Session, services.Question)
	c.AiController = controller.NewAiController(generationService)

	return c, nil
}

func newLimiter(cfg *config.Config, log logger.ILogger, c *Container) ratelimit.Limiter {
	if cfg.Ai.RateLimitPerMinute <= 0 {
		return ratelimit.Unlimited{}
	}
	limitCfg := ratelimit.Config{Limit: cfg.Ai.RateLimitPerMinute, Window: time.Minute}

	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("GENERATION", "Failed to connect to Redis, using in-memory rate limit", map[string]interface{}{"error": err})
			_ = rdb.Close()
			return ratelimit.NewMemoryLimiter(limitCfg)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return ratelimit.NewRedisLimiter(rdb, limitCfg)
	}
	return ratelimit.NewMemoryLimiter(limitCfg)
}

// Close releases the event bus and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
