package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yamanekazuki/hr-qa-assistant/internal/config"
	"github.com/yamanekazuki/hr-qa-assistant/internal/constant"
	"github.com/yamanekazuki/hr-qa-assistant/internal/controller"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/handler"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/logger"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository/implementation"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository/memory"
	"github.com/yamanekazuki/hr-qa-assistant/internal/service"
	ws "github.com/yamanekazuki/hr-qa-assistant/internal/websocket"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/database"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/generation"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/knowledge"
	natspub "github.com/yamanekazuki/hr-qa-assistant/pkg/nats"
)

// Container wires every component of the assistant. Optional infrastructure
// (NATS, Redis) degrades to nil and the dependents nil-check it.
type Container struct {
	Config *config.Config
	Logger logger.ILogger

	AssistantController controller.IAssistantController
	OAuthController     controller.IOAuthController
	AdminController     controller.IAdminController
	SessionHandler      *handler.SessionHandler
	Hub                 *ws.Hub

	db            *gorm.DB
	pubSub        *gochannel.GoChannel
	natsPublisher *natspub.Publisher
	consumer      service.IConsumerService
}

func NewContainer() *Container {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.QueryRecord{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	kb, err := knowledge.Load(cfg.Assistant.KnowledgeBasePath)
	if err != nil {
		log.Fatalf("Failed to load knowledge base: %v", err)
	}
	sysLogger.Info("Bootstrap", "Knowledge base loaded", map[string]interface{}{"items": kb.Len()})

	var natsPublisher *natspub.Publisher
	if cfg.App.NatsURL != "" {
		natsPublisher, err = natspub.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, admin events disabled", map[string]interface{}{"error": err.Error()})
			natsPublisher = nil
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		if opts, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
			rdb = redis.NewClient(opts)
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				sysLogger.Warn("Bootstrap", "Redis unavailable, cross-instance fanout disabled", map[string]interface{}{"error": err.Error()})
				rdb = nil
			}
		}
	}

	hub := ws.NewHub(rdb, sysLogger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	userRepo := implementation.NewUserRepository(db)
	historyRepo := implementation.NewHistoryRepository(db)
	sessionRepo := memory.NewSessionRepository()

	generator := generation.NewGeminiClient(cfg.Assistant.GeminiAPIKey, constant.AIModel)

	publisherService := service.NewPublisherService(pubSub, cfg.Assistant.AnalyticsTopic, cfg.Assistant.EnrichmentTopic)
	consumerService := service.NewConsumerService(historyRepo, natsPublisher, sysLogger)
	assistantService := service.NewAssistantService(kb, generator, sessionRepo, publisherService, hub, sysLogger, cfg.Assistant.RequestTimeout)
	oauthService := service.NewOAuthService(cfg, userRepo, natsPublisher, sysLogger)
	adminService := service.NewAdminService(historyRepo, sysLogger)

	return &Container{
		Config:              cfg,
		Logger:              sysLogger,
		AssistantController: controller.NewAssistantController(assistantService),
		OAuthController:     controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		AdminController:     controller.NewAdminController(adminService),
		SessionHandler:      handler.NewSessionHandler(hub, cfg.Auth.JWTSecret),
		Hub:                 hub,
		db:                  db,
		pubSub:              pubSub,
		natsPublisher:       natsPublisher,
		consumer:            consumerService,
	}
}

// Start launches the hub and the analytics consumers. Subscriptions are
// created before any request can publish, so no message is lost at startup.
func (c *Container) Start(ctx context.Context) error {
	go c.Hub.Run()

	answered, err := c.pubSub.Subscribe(ctx, c.Config.Assistant.AnalyticsTopic)
	if err != nil {
		return err
	}
	enriched, err := c.pubSub.Subscribe(ctx, c.Config.Assistant.EnrichmentTopic)
	if err != nil {
		return err
	}

	go c.consumer.RunAnsweredConsumer(ctx, answered)
	go c.consumer.RunEnrichedConsumer(ctx, enriched)
	return nil
}

func (c *Container) Shutdown() {
	if c.pubSub != nil {
		c.pubSub.Close()
	}
	if c.natsPublisher != nil {
		c.natsPublisher.Close()
	}
	if sqlDB, err := c.db.DB(); err == nil {
		sqlDB.Close()
	}
	c.Logger.Sync()
}
