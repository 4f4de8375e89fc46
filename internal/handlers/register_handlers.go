package handlers

import (
	"github.com/SscSPs/farm_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/middleware"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Every route in it needs a
// valid access token and a resolvable session.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.SessionMiddleware(services.User),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerUserRoutes(v1, services.User)
	registerWalletRoutes(v1, services.Wallet)
	registerCategoryRoutes(v1, services.Category)
	registerCustomFieldRoutes(v1, services.CustomField)
	registerTransactionRoutes(v1, services.Transaction)
	registerFeedJournalRoutes(v1, services.FeedJournal)
	registerReportingRoutes(v1, services.Reporting)
	registerAuditRoutes(v1, services.Audit)
	registerExportRoutes(v1, services.Export, cfg.ExportRateLimit, posthogClient)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
