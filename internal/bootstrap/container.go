package bootstrap

import (
	"context"
	"time"

	"agrisense-be/internal/config"
	"agrisense-be/internal/controller"
	"agrisense-be/internal/data"
	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/pkg/serverutils"
	"agrisense-be/internal/pkg/token"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/implementation"
	"agrisense-be/internal/repository/memory"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/internal/service"
	"agrisense-be/pkg/embedding"
	"agrisense-be/pkg/events"
	"agrisense-be/pkg/llm"
	"agrisense-be/pkg/llm/factory"
	pktNats "agrisense-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	AuthController     controller.IAuthController
	FarmerController   controller.IFarmerController
	ChatbotController  controller.IChatbotController
	AdvisoryController controller.IAdvisoryController
	SchemeController   controller.ISchemeController
	WeatherController  controller.IWeatherController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	closers []func() error
}

// Dependencies are the external collaborators of the container. Tests supply fakes here.
type Dependencies struct {
	DB                *gorm.DB
	Config            *config.Config
	Logger            logger.ILogger
	LLMLogger         logger.ILogger
	LLMProvider       llm.LLMProvider
	EmbeddingProvider embedding.EmbeddingProvider
	EventPublisher    events.Publisher
	ResponseCache     contract.ResponseCache
	Schemes           []entity.Scheme
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	ctx := context.Background()

	// 1. Logging
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	deps := Dependencies{
		DB:        db,
		Config:    cfg,
		Logger:    sysLogger,
		LLMLogger: llmLogger,
	}
	var closers []func() error

	// 2. Model providers
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.ChatModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Ai.LLMAPIKey,
	})
	if err != nil {
		return nil, err
	}
	deps.LLMProvider = llmProvider
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.ChatModel,
	})

	embeddingProvider, err := embedding.NewProvider(ctx, cfg.Ai.EmbeddingProvider, cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.GoogleGemini)
	if err != nil {
		return nil, err
	}
	deps.EmbeddingProvider = embeddingProvider

	// 3. NATS (optional)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS unavailable, domain events disabled", map[string]interface{}{
			"error": err.Error(),
		})
		deps.EventPublisher = events.NopPublisher{}
	} else {
		deps.EventPublisher = natsPub
		closers = append(closers, func() error { natsPub.Close(); return nil })
	}

	// 4. Response cache: redis when reachable, in-process otherwise
	deps.ResponseCache = newResponseCache(ctx, cfg, sysLogger, &closers)

	// 5. Reference data
	schemes, err := data.LoadSchemes(cfg.Data.SchemesPath)
	if err != nil {
		return nil, err
	}
	deps.Schemes = schemes

	c := Assemble(deps)
	// Loggers flush last, after every connection is closed.
	flush := func() error {
		_ = llmLogger.Sync()
		_ = sysLogger.Sync()
		return nil
	}
	c.closers = append(append([]func() error{flush}, closers...), c.closers...)
	return c, nil
}

func newResponseCache(ctx context.Context, cfg *config.Config, log logger.ILogger, closers *[]func() error) contract.ResponseCache {
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unavailable, using in-memory cache", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return memory.NewResponseCache(cfg.Weather.CacheTTL)
	}

	*closers = append(*closers, rdb.Close)
	return implementation.NewRedisResponseCache(rdb, "agrisense:")
}

// Assemble wires services and controllers from already constructed dependencies.
func Assemble(deps Dependencies) *Container {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	llmLog := deps.LLMLogger
	if llmLog == nil {
		llmLog = logger.NewNopLogger()
	}
	eventPublisher := deps.EventPublisher
	if eventPublisher == nil {
		eventPublisher = events.NopPublisher{}
	}
	cache := deps.ResponseCache
	if cache == nil {
		cache = memory.NewResponseCache(cfg.Weather.CacheTTL)
	}

	uowFactory := unitofwork.NewRepositoryFactory(deps.DB)
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authMiddleware := serverutils.JwtMiddleware(issuer)

	// Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisherService := service.NewPublisherService(cfg.App.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IndexTopic,
		uowFactory,
		deps.EmbeddingProvider,
		log,
	)

	// Services
	authService := service.NewAuthService(uowFactory, issuer, eventPublisher, log)
	farmerService := service.NewFarmerService(uowFactory, eventPublisher, log)
	chatbotService := service.NewChatbotService(
		uowFactory,
		deps.LLMProvider,
		publisherService,
		eventPublisher,
		service.ChatCompletionConfig{
			Model:       cfg.Ai.ChatModel,
			Temperature: cfg.Ai.Temperature,
			MaxTokens:   cfg.Ai.MaxTokens,
		},
		log,
		llmLog,
	)
	advisoryService := service.NewAdvisoryService(deps.LLMProvider, service.AdvisoryModels{
		Text:   cfg.Ai.AdvisoryModel,
		Vision: cfg.Ai.VisionModel,
	}, log)
	schemeService := service.NewSchemeService(deps.Schemes)
	weatherService := service.NewWeatherService(service.WeatherConfig{
		APIKey:   cfg.Weather.APIKey,
		BaseURL:  cfg.Weather.BaseURL,
		CacheTTL: cfg.Weather.CacheTTL,
	}, cache, nil, log)

	return &Container{
		HealthController:   controller.NewHealthController(deps.DB),
		AuthController:     controller.NewAuthController(authService, authMiddleware),
		FarmerController:   controller.NewFarmerController(farmerService),
		ChatbotController:  controller.NewChatbotController(chatbotService, authMiddleware),
		AdvisoryController: controller.NewAdvisoryController(advisoryService, authMiddleware),
		SchemeController:   controller.NewSchemeController(schemeService),
		WeatherController:  controller.NewWeatherController(weatherService),

		ConsumerService: consumerService,
		Logger:          log,
		closers:         []func() error{pubSub.Close},
	}
}

// Close releases background connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Shutdown step failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
