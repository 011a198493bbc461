package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clienthubdev/clienthub-api/internal/audit"
	"github.com/clienthubdev/clienthub-api/internal/auth"
	"github.com/clienthubdev/clienthub-api/internal/config"
	"github.com/clienthubdev/clienthub-api/internal/handlers"
	infraRepo "github.com/clienthubdev/clienthub-api/internal/infra/repository"
	"github.com/clienthubdev/clienthub-api/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {

	// ------------------------------
	// INFRA
	// ------------------------------
	userRepo := infraRepo.NewUserGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	projectRepo := infraRepo.NewProjectGormRepository(db)
	interactionRepo := infraRepo.NewInteractionGormRepository(db)
	reminderRepo := infraRepo.NewReminderGormRepository(db)
	dashboardRepo := infraRepo.NewDashboardGormRepository(db)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(db)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(userRepo, issuer)
	clientHandler := handlers.NewClientHandler(clientRepo, auditDispatcher)
	projectHandler := handlers.NewProjectHandler(projectRepo, clientRepo, auditDispatcher)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo, clientRepo, projectRepo, auditDispatcher)
	reminderHandler := handlers.NewReminderHandler(reminderRepo, clientRepo, projectRepo, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(dashboardRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogRepo)

	// ------------------------------
	// API (JSON)
	// ------------------------------
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(issuer))
		{
			secured.GET("/auth/profile", authHandler.Profile)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/projects", projectHandler.List)
			secured.POST("/projects", projectHandler.Create)
			secured.GET("/projects/:id", projectHandler.Get)
			secured.PUT("/projects/:id", projectHandler.Update)
			secured.DELETE("/projects/:id", projectHandler.Delete)

			secured.GET("/interactions", interactionHandler.List)
			secured.POST("/interactions", interactionHandler.Create)
			secured.GET("/interactions/:id", interactionHandler.Get)
			secured.PUT("/interactions/:id", interactionHandler.Update)
			secured.DELETE("/interactions/:id", interactionHandler.Delete)

			secured.GET("/reminders", reminderHandler.List)
			secured.POST("/reminders", reminderHandler.Create)
			secured.GET("/reminders/:id", reminderHandler.Get)
			secured.PUT("/reminders/:id", reminderHandler.Update)
			secured.DELETE("/reminders/:id", reminderHandler.Delete)

			secured.GET("/dashboard", dashboardHandler.Get)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
