package router

import (
	"github.com/fpt-software/website-api/internal/announcement"
	"github.com/fpt-software/website-api/internal/auth"
	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/industry"
	"github.com/fpt-software/website-api/internal/meta"
	"github.com/fpt-software/website-api/internal/model"
	"github.com/fpt-software/website-api/internal/shared/cache"
	"github.com/fpt-software/website-api/internal/shared/database"
	"github.com/fpt-software/website-api/internal/shared/middleware"
	"github.com/fpt-software/website-api/internal/shared/token"
	"github.com/fpt-software/website-api/internal/shared/upload"
	"github.com/fpt-software/website-api/internal/subscription"
	"github.com/fpt-software/website-api/internal/user"
	"github.com/gin-gonic/gin"
)

// announcementFolder is the upload sub-directory for announcement files.
const announcementFolder = "announcements"

// Dependencies are the long-lived collaborators built by main.
type Dependencies struct {
	DB      *database.DB
	Cache   cache.Cache
	Storage upload.Storage
}

// Setup registers every route. Reads are public; writes need an admin or
// editor token; the user collection is admin only.
func Setup(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, meta.PingFunc(deps.DB.HealthCheck), deps.Cache)
	router.GET("/health", metaHandler.Health)

	// Locally stored uploads are served from disk
	if cfg.Upload.Driver == config.StorageLocal {
		router.Static(cfg.Upload.PublicPrefix, cfg.Upload.Dir)
	}

	// repository
	userRepository := user.NewUserRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit)
	announcementUploads := upload.NewService(deps.Storage, announcementFolder, cfg.Upload.MaxSizeBytes)

	// service
	authService := auth.NewAuthService(deps.DB.DB, userRepository, tokenManager)
	userService := user.NewUserService(deps.DB.DB, userRepository, deps.Cache)
	industryService := industry.NewIndustryService(deps.DB.DB)
	announcementService := announcement.NewAnnouncementService(deps.DB.DB, announcementUploads, deps.Cache)
	subscriptionService := subscription.NewSubscriptionService()

	// handler
	authHandler := auth.NewAuthHandler(authService)
	userHandler := user.NewUserHandler(userService)
	industryHandler := industry.NewIndustryHandler(industryService)
	announcementHandler := announcement.NewAnnouncementHandler(announcementService)
	subscriptionHandler := subscription.NewSubscriptionHandler(subscriptionService)

	authenticated := middleware.JWT(tokenManager, authService)
	staff := middleware.RequireRoles(model.RoleAdmin, model.RoleEditor)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	// API v1 routes
	v1 := router.Group("/api/v1")

	authV1 := v1.Group("/auth")
	{
		authV1.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
		authV1.GET("/profile", authenticated, authHandler.Profile)
		authV1.GET("/validate", authenticated, authHandler.Validate)
	}

	announcementV1 := v1.Group("/announcements")
	{
		announcementV1.GET("", announcementHandler.FindAll)
		announcementV1.GET("/filters", announcementHandler.FilterOptions)
		announcementV1.GET("/admin", authenticated, staff, announcementHandler.FindAllForAdmin)
		announcementV1.GET("/:id", announcementHandler.FindOne)
		announcementV1.POST("", authenticated, staff, announcementHandler.Create)
		announcementV1.POST("/upload", authenticated, staff, announcementHandler.Upload)
		announcementV1.PATCH("/:id", authenticated, staff, announcementHandler.Update)
		announcementV1.DELETE("/:id", authenticated, staff, announcementHandler.Remove)
	}

	industryV1 := v1.Group("/industries")
	{
		industryV1.GET("", industryHandler.FindAll)
		industryV1.GET("/filters", industryHandler.FilterOptions)
		industryV1.GET("/:id", industryHandler.FindOne)
		industryV1.POST("", authenticated, staff, industryHandler.Create)
		industryV1.PATCH("/:id", authenticated, staff, industryHandler.Update)
		industryV1.DELETE("/:id", authenticated, staff, industryHandler.Remove)
	}

	userV1 := v1.Group("/users")
	userV1.Use(authenticated, adminOnly)
	{
		userV1.POST("", userHandler.Create)
		userV1.GET("", userHandler.FindAll)
		userV1.GET("/filters", userHandler.FilterOptions)
		userV1.GET("/:id", userHandler.FindOne)
		userV1.PATCH("/:id", userHandler.Update)
		userV1.DELETE("/:id", userHandler.Remove)
	}

	v1.POST("/subscriptions", middleware.RateLimit(limiter), subscriptionHandler.Create)
}
