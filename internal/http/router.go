package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/config"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/geocode"
	"github.com/civicpulse/backend/internal/http/handlers"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/service"

	_ "github.com/civicpulse/backend/docs"
)

func Router(cfg config.Config, store *db.Store, lifecycle service.Lifecycle, geocoder geocode.ReverseGeocoder, redisClient *redis.Client, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	tokens := auth.TokenIssuer{Secret: []byte(cfg.JWTSecret)}
	h := &handlers.Handler{
		Store:     store,
		Lifecycle: lifecycle,
		Geocoder:  geocoder,
		Validator: validator.New(),
		Logger:    logger,
		Tokens:    tokens,
		UploadDir: cfg.UploadDir,
	}

	r.GET("/healthz", h.Healthz)
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.CitizenLogin)
		api.POST("/staff/login", h.StaffLogin)
		api.POST("/supervisor/login", h.SupervisorLogin)
		api.GET("/geocode", h.ReverseGeocode)
	}

	anyActor := api.Group("")
	anyActor.Use(middleware.RequireSession(tokens))
	{
		anyActor.GET("/stream", h.Stream)
		anyActor.GET("/tickets/:id", h.ReportDetails)
	}

	citizen := api.Group("")
	citizen.Use(middleware.RequireSession(tokens, auth.RoleCitizen))
	{
		citizen.POST("/reports", middleware.SubmissionLimiter(redisClient, cfg.DailyReportLimit), h.CreateReport)
		citizen.GET("/reports", h.MyReports)
		citizen.GET("/reports/nearby", h.NearbyReports)
		citizen.POST("/tickets/:id/join", h.JoinReport)
		citizen.POST("/tickets/:id/feedback", h.SubmitFeedback)
		citizen.GET("/profile", h.Profile)
	}

	staff := api.Group("/staff")
	staff.Use(middleware.RequireSession(tokens, auth.RoleStaff))
	{
		staff.GET("/tickets", h.StaffTickets)
		staff.POST("/tickets/:id/assign", h.AssignTicket)
		staff.POST("/tickets/:id/approve", h.ApproveTicket)
		staff.POST("/tickets/:id/reject", h.RejectTicket)
		staff.GET("/supervisors", h.ListSupervisors)
		staff.POST("/supervisors", h.CreateSupervisor)
		staff.GET("/analytics", h.Analytics)
	}

	supervisor := api.Group("/supervisor")
	supervisor.Use(middleware.RequireSession(tokens, auth.RoleSupervisor))
	{
		supervisor.GET("/tickets", h.SupervisorTickets)
		supervisor.POST("/tickets/:id/complete", h.CompleteTicket)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
