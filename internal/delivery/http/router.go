package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/delivery/http/handler"
	"github.com/studybuds/studybuds-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	partnerHandler *handler.PartnerHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	eventHandler   *handler.EventHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *zap.Logger
	enableDevAuth  bool
}

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Partner *handler.PartnerHandler
	Feed    *handler.FeedHandler
	Swipe   *handler.SwipeHandler
	Match   *handler.MatchHandler
	Chat    *handler.ChatHandler
	Event   *handler.EventHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
	enableDevAuth bool,
) *Router {
	return &Router{
		authHandler:    handlers.Auth,
		profileHandler: handlers.Profile,
		partnerHandler: handlers.Partner,
		feedHandler:    handlers.Feed,
		swipeHandler:   handlers.Swipe,
		matchHandler:   handlers.Match,
		chatHandler:    handlers.Chat,
		eventHandler:   handlers.Event,
		authMiddleware: authMiddleware,
		logger:         logger,
		enableDevAuth:  enableDevAuth,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(r.logger),
		middleware.RequestLogger(r.logger),
		middleware.Metrics(),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			if r.enableDevAuth {
				auth.POST("/dev-token", r.authHandler.DevToken)
			}
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.SubmitQuestionnaire)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			partners := protected.Group("/partners")
			{
				partners.GET("", r.partnerHandler.FindPartners)
				partners.GET("/:user_id/score", r.partnerHandler.GetScore)
			}

			feed := protected.Group("/feed")
			{
				feed.GET("/next", r.feedHandler.GetNext)
				feed.POST("/swipe", r.swipeHandler.Swipe)
				feed.POST("/reset", r.feedHandler.Reset)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.List)
				matches.POST("", r.matchHandler.Create)
				matches.GET("/:id", r.matchHandler.Get)
				matches.POST("/:id/accept", r.matchHandler.Accept)
				matches.POST("/:id/decline", r.matchHandler.Decline)
				matches.POST("/:id/cancel", r.matchHandler.Cancel)
				matches.GET("/:id/icebreakers", r.matchHandler.Icebreakers)
				matches.GET("/:id/messages", r.chatHandler.ListMessages)
				matches.POST("/:id/messages", r.chatHandler.SendMessage)
				matches.GET("/:id/messages/ws", r.chatHandler.Stream)
			}

			events := protected.Group("/events")
			{
				events.GET("", r.eventHandler.List)
				events.POST("", r.eventHandler.Create)
				events.DELETE("/:id", r.eventHandler.Delete)
				events.POST("/:id/share", r.eventHandler.Share)
				events.DELETE("/:id/share", r.eventHandler.Unshare)
			}
		}
	}

	return router, nil
}
