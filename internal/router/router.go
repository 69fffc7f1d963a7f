package router

import (
	"time"

	"github.com/brightmark/marketing-dispatcher-backend/internal/config"
	"github.com/brightmark/marketing-dispatcher-backend/internal/database/repository"
	"github.com/brightmark/marketing-dispatcher-backend/internal/handlers"
	"github.com/brightmark/marketing-dispatcher-backend/internal/middleware"
	"github.com/brightmark/marketing-dispatcher-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with the integration, webhook and
// operator route groups.
func SetupRouter(db *gorm.DB, cfg *config.IntegrationConfig, notifier services.Notifier) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key", "X-N8N-Webhook-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create repositories
	campaignRepo := repository.NewCampaignRepository(db)
	contactRepo := repository.NewContactRepository(db)
	contactListRepo := repository.NewContactListRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	messageRepo := repository.NewCampaignMessageRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)
	qrCodeRepo := repository.NewQRCodeRepository(db)

	// Create services
	triggerService := services.NewTriggerService(campaignRepo, cfg)
	statsService := services.NewStatsService(campaignRepo, messageRepo)
	messageService := services.NewMessageStatusService(campaignRepo, contactRepo, messageRepo, statsService)
	webhookService := services.NewWebhookService(campaignRepo, contactRepo, qrCodeRepo, webhookRepo, notifier)
	campaignService := services.NewCampaignService(campaignRepo, contactListRepo, templateRepo, triggerService)

	// Create handlers with services
	campaignHandler := handlers.NewCampaignHandler(campaignService, messageService)
	integrationHandler := handlers.NewIntegrationHandler(campaignService, messageService, webhookService)
	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Signed callbacks from the automation worker. Authenticated per
		// request by HMAC signature, not by the shared API key.
		api.POST("/n8n-webhook/:webhook_id",
			middleware.WebhookSignatureAuth(webhookRepo),
			webhookHandler.HandleWebhook)

		// Everything else requires the shared API key.
		protected := api.Group("")
		protected.Use(middleware.APIKeyAuth(cfg.APIKey))
		{
			// Integration routes used by the automation worker
			protected.POST("/campaign/update-message", integrationHandler.UpdateMessageStatus)
			protected.GET("/campaign/:id", integrationHandler.GetCampaignDetails)
			protected.GET("/list/:id/contacts", integrationHandler.GetListContacts)
			protected.POST("/n8n-workflow/status", integrationHandler.WorkflowStatus)

			// Webhook registration
			protected.POST("/webhooks", webhookHandler.RegisterWebhook)

			// Campaign routes
			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.ListCampaigns)
				campaigns.GET("/:id", campaignHandler.GetCampaignByID)
				campaigns.GET("/:id/messages", campaignHandler.GetCampaignMessages)
				campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
				campaigns.POST("/:id/start", campaignHandler.StartCampaign)
				campaigns.POST("/:id/pause", campaignHandler.PauseCampaign)
				campaigns.POST("/:id/resume", campaignHandler.ResumeCampaign)
			}
		}
	}

	return r
}
