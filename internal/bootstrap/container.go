package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"edumate-be/internal/config"
	"edumate-be/internal/constant"
	"edumate-be/internal/controller"
	"edumate-be/internal/handler"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/mailer"
	"edumate-be/internal/repository/memory"
	"edumate-be/internal/repository/statestore"
	"edumate-be/internal/repository/unitofwork"
	"edumate-be/internal/service"
	"edumate-be/internal/websocket"
	"edumate-be/pkg/clock"
	"edumate-be/pkg/kvstore"
	"edumate-be/pkg/learner"
	"edumate-be/pkg/llm"
	"edumate-be/pkg/llm/backend"
	"edumate-be/pkg/llm/factory"
	pktNats "edumate-be/pkg/nats"
	"edumate-be/pkg/roadmap"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	LearnerController controller.ILearnerController
	RoadmapController controller.IRoadmapController
	MentorController  controller.IMentorController
	ResumeController  controller.IResumeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLogPath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() {
		_ = sysLogger.Sync()
		_ = wsLogger.Sync()
	})

	var emailService mailer.IEmailService = mailer.NopEmailService{}
	if cfg.SMTP.Enabled() {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
			sysLogger,
		)
	} else {
		log.Println("[INFO] SMTP not configured, outgoing mail disabled")
	}

	// 2. Infrastructure
	rdb := newRedisClient(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var mirror service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			mirror = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	eventBus := service.NewEventBus(pubSub, service.EventsTopic)

	// 4. Learner state
	store, err := newStateStore(cfg.Learner.StoreDriver, uowFactory, rdb)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using learner state store: %s", cfg.Learner.StoreDriver)

	engine := learner.NewEngine(store, clock.RealClock{}, learner.RandomSampler{}, eventBus, sysLogger, learner.Options{
		Location:             cfg.Learner.Location(),
		DailyTaskLimit:       cfg.Learner.DailyTaskLimit,
		NotificationCapacity: cfg.Learner.NotificationCapacity,
		TasksPerWeek:         cfg.Learner.TasksPerWeek,
	})

	// 5. AI
	llmProvider, err := factory.NewLLMProvider(llmConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var generator roadmap.Generator
	if cfg.Ai.RoadmapSource == "llm" {
		generator = roadmap.NewPromptGenerator(llmProvider, llm.WithTemperature(0.2))
	} else {
		generator = roadmap.NewBackendGenerator(backend.NewClient(cfg.Ai.BackendURL, cfg.Ai.RequestTimeout))
	}
	log.Printf("[INFO] Using roadmap source: %s", cfg.Ai.RoadmapSource)

	// 6. Services
	transcripts := memory.NewChatTranscriptRepository(cfg.Learner.ChatSessionTTL, constant.MentorHistoryLimit)

	authService := service.NewAuthService(uowFactory, eventBus, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clock.RealClock{}, sysLogger)
	roadmapService := service.NewRoadmapService(generator, engine, sysLogger)
	mentorService := service.NewMentorService(llmProvider, transcripts, clock.RealClock{}, sysLogger)
	resumeService := service.NewResumeService(llmProvider, engine, eventBus, clock.RealClock{}, sysLogger)

	unsubscribe := authService.Subscribe(func(_ context.Context, state service.AuthState) {
		if !state.SignedIn {
			mentorService.Reset(state.UserID)
		}
	})
	c.closers = append(c.closers, unsubscribe)

	// 7. Realtime
	wsHub := websocket.NewHub(rdb, wsLogger)
	c.WebSocketHub = wsHub
	c.NotificationHandler = handler.NewNotificationHandler(engine, wsHub, wsLogger)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		service.EventsTopic,
		wsHub,
		mirror,
		emailService,
		uowFactory,
		sysLogger,
	)

	// 8. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.LearnerController = controller.NewLearnerController(engine)
	c.RoadmapController = controller.NewRoadmapController(roadmapService)
	c.MentorController = controller.NewMentorController(mentorService)
	c.ResumeController = controller.NewResumeController(resumeService)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func llmConfig(cfg *config.Config) factory.Config {
	out := factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		Timeout:  cfg.Ai.RequestTimeout,
	}
	switch cfg.Ai.LLMProvider {
	case "openrouter":
		out.BaseURL = cfg.Ai.OpenRouterBaseURL
		out.APIKey = cfg.Ai.OpenRouterAPIKey
		out.Referer = cfg.App.ClientURL
	case "ollama":
		out.BaseURL = cfg.Ai.OllamaBaseURL
	default:
		out.BaseURL = cfg.Ai.BackendURL
	}
	return out
}

// newRedisClient returns nil when Redis is not configured or unreachable.
func newRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func newStateStore(driver string, uowFactory unitofwork.RepositoryFactory, rdb *redis.Client) (kvstore.Store, error) {
	switch driver {
	case "postgres", "":
		return statestore.New(uowFactory), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("learner store %q needs a reachable REDIS_URL", driver)
		}
		return kvstore.NewRedisStore(rdb), nil
	case "memory":
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported learner store: %s", driver)
	}
}
