package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-api/internal/database"
	"participation-api/internal/events"
	"participation-api/internal/handler"
	"participation-api/internal/metrics"
	"participation-api/internal/middleware"
	"participation-api/internal/repository"
	"participation-api/internal/service"
)

// Config holds the dependencies needed to set up the router
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Publisher      events.Publisher
}

// Setup wires repositories, services and handlers and returns the engine
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NewNoOpPublisher()
	}

	moderationRepo := repository.NewModerationRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB, moderationRepo)
	voteRepo := repository.NewVoteRepository(cfg.DB)
	proposalRepo := repository.NewProposalRepository(cfg.DB)
	meetingRepo := repository.NewMeetingRepository(cfg.DB)
	spaceRepo := repository.NewSpaceRepository(cfg.DB)
	followRepo := repository.NewFollowRepository(cfg.DB)

	commentService := service.NewCommentService(
		commentRepo, moderationRepo, voteRepo,
		proposalRepo, meetingRepo, spaceRepo, followRepo,
		publisher, cfg.Metrics, cfg.Logger,
	)
	proposalService := service.NewProposalService(
		proposalRepo, moderationRepo, spaceRepo,
		publisher, cfg.Metrics, cfg.Logger,
	)
	moderationService := service.NewModerationService(moderationRepo, cfg.Logger)

	commentHandler := handler.NewCommentHandler(commentService)
	proposalHandler := handler.NewProposalHandler(proposalService)
	moderationHandler := handler.NewModerationHandler(moderationService)

	healthHandler := func(c *gin.Context) {
		dbStatus := "disconnected"
		if database.IsConnected() {
			dbStatus = "connected"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": dbStatus})
	}
	metricsHandler := gin.WrapH(promhttp.Handler())

	// Root-level health and metrics stay reachable regardless of the base path
	r.GET("/health", healthHandler)
	r.GET("/metrics", metricsHandler)

	api := r.Group(cfg.BasePath)
	{
		// Duplicate both endpoints under the base path unless it is the root
		if cfg.BasePath != "" && cfg.BasePath != "/" {
			api.GET("/health", healthHandler)
			api.GET("/metrics", metricsHandler)
		}

		authorized := api.Group("")
		authorized.Use(middleware.Auth(cfg.JWTSecret))
		{
			authorized.POST("/comments", commentHandler.CreateComment)
			authorized.GET("/comments", commentHandler.ListComments)
			authorized.POST("/comments/:commentId/votes", commentHandler.VoteComment)

			authorized.POST("/proposals", proposalHandler.CreateProposal)
			authorized.GET("/spaces/:spaceId/proposals", proposalHandler.ListProposals)

			authorized.POST("/reports", moderationHandler.Report)

			moderations := authorized.Group("/moderations")
			{
				moderations.GET("/pending", moderationHandler.ListPending)
				moderations.POST("/:moderationId/hide", moderationHandler.Hide)
				moderations.POST("/:moderationId/unhide", moderationHandler.Unhide)
				moderations.PUT("/:moderationId/upstream", moderationHandler.SetUpstreamState)
			}
		}
	}

	return r
}
