package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/config"
	"github.com/studybuds/studybuds-backend/internal/delivery/http"
	"github.com/studybuds/studybuds-backend/internal/delivery/http/handler"
	"github.com/studybuds/studybuds-backend/internal/delivery/http/middleware"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/database"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/gemini"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/logger"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/pubsub"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/server"
	"github.com/studybuds/studybuds-backend/internal/repository"
	"github.com/studybuds/studybuds-backend/internal/repository/memory"
	"github.com/studybuds/studybuds-backend/internal/repository/postgres"
	"github.com/studybuds/studybuds-backend/internal/repository/redisrepo"
	"github.com/studybuds/studybuds-backend/internal/usecase/auth"
	"github.com/studybuds/studybuds-backend/internal/usecase/calendar"
	"github.com/studybuds/studybuds-backend/internal/usecase/chat"
	"github.com/studybuds/studybuds-backend/internal/usecase/feed"
	"github.com/studybuds/studybuds-backend/internal/usecase/icebreaker"
	"github.com/studybuds/studybuds-backend/internal/usecase/match"
	"github.com/studybuds/studybuds-backend/internal/usecase/profile"
	"github.com/studybuds/studybuds-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Router *gin.Engine
	Server *server.Server
	Gemini *gemini.GeminiClient
}

type repositories struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	messages repository.MessageRepository
	events   repository.EventRepository
	skips    repository.SkipRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c := &Container{Config: cfg, Logger: log}
	if err := c.build(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) build(ctx context.Context) error {
	cfg := c.Config

	// Initialize storage
	var (
		repos *repositories
		store *memory.Store
	)
	switch cfg.Storage.Type {
	case config.StorageTypePostgres:
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		repos = &repositories{
			profiles: postgres.NewProfileRepository(db),
			matches:  postgres.NewMatchRepository(db),
			messages: postgres.NewMessageRepository(db),
			events:   postgres.NewEventRepository(db),
		}
	default:
		store = memory.NewStore()
		repos = &repositories{
			profiles: memory.NewProfileRepository(store),
			matches:  memory.NewMatchRepository(store),
			messages: memory.NewMessageRepository(store),
			events:   memory.NewEventRepository(store),
		}
	}
	c.Logger.Info("storage initialized", zap.String("type", cfg.Storage.Type))

	// Initialize Redis
	var broker pubsub.Broker
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		broker = pubsub.NewRedisBroker(client, c.Logger)
		repos.skips = redisrepo.NewSkipRepository(client, cfg.Matching.FeedSkipTTL)
		c.Logger.Info("redis enabled", zap.String("addr", cfg.Redis.GetAddr()))
	} else {
		if store == nil {
			store = memory.NewStore()
		}
		broker = pubsub.NewMemoryBroker()
		repos.skips = memory.NewSkipRepository(store)
		c.Logger.Info("redis disabled, using in-process broker")
	}

	// Initialize Gemini Client
	var generator icebreaker.Generator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			// Don't fail, just continue with template icebreakers
			c.Logger.Warn("failed to initialize gemini client", zap.Error(err))
		} else {
			c.Gemini = client
			generator = client
		}
	}

	// Initialize use cases
	tokenUseCase := auth.NewTokenUseCase(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.DevTokenExpiry)
	matchUseCase := match.NewMatchUseCase(repos.matches, repos.profiles, c.Logger)
	partnerFinder := feed.NewPartnerFinder(repos.profiles, repos.matches, c.Logger)
	feedUseCase := feed.NewFeedUseCase(partnerFinder, repos.skips, matchUseCase, c.Logger)
	swipeUseCase := swipe.NewSwipeUseCase(repos.skips, matchUseCase, c.Logger)
	profileUseCase := profile.NewProfileUseCase(repos.profiles, c.Logger)
	chatUseCase := chat.NewChatUseCase(repos.matches, repos.messages, broker, c.Logger)
	icebreakerUseCase := icebreaker.NewIcebreakerUseCase(repos.matches, repos.profiles, generator, c.Logger)
	calendarUseCase := calendar.NewCalendarUseCase(repos.events, c.Logger)

	// Initialize handlers
	handlers := http.Handlers{
		Auth:    handler.NewAuthHandler(tokenUseCase),
		Profile: handler.NewProfileHandler(profileUseCase),
		Partner: handler.NewPartnerHandler(partnerFinder, cfg.Matching.MinScore),
		Feed:    handler.NewFeedHandler(feedUseCase, cfg.Matching.MinScore),
		Swipe:   handler.NewSwipeHandler(swipeUseCase),
		Match:   handler.NewMatchHandler(matchUseCase, icebreakerUseCase),
		Chat:    handler.NewChatHandler(chatUseCase, c.Logger),
		Event:   handler.NewEventHandler(calendarUseCase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenUseCase)

	// Initialize router
	router := http.NewRouter(handlers, authMiddleware, c.Logger, !cfg.IsProduction())
	ginRouter, err := router.Setup()
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}
	c.Router = ginRouter

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, ginRouter, c.Logger)
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	_ = c.Logger.Sync()
	return nil
}
