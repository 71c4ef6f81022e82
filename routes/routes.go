package routes

import (
	"net/http"
	"time"

	"marketplace/config"
	"marketplace/handlers"
	"marketplace/middleware"
	"marketplace/models"
	"marketplace/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterCatalogRoutes registers the public taxonomy, navigation and browse endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/navigation", hb.Catalog.NavigationHandler)

		api.GET("/taxonomy/sectors", hb.Catalog.SectorsHandler)
		api.GET("/taxonomy/sectors/:sectorID/categories", hb.Catalog.CategoriesHandler)
		api.GET("/taxonomy/categories/:categoryID/subcategories", hb.Catalog.SubCategoriesHandler)

		api.GET("/services", hb.Catalog.BrowseHandler)
		api.GET("/services/:sector", hb.Catalog.BrowseHandler)
		api.GET("/services/:sector/:category", hb.Catalog.BrowseHandler)
		api.GET("/services/:sector/:category/:subcategory", hb.Catalog.BrowseHandler)

		api.GET("/listings/:id", hb.Catalog.GetListingHandler)
	}
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/password/check", hb.Auth.PasswordCheckHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Authenticator))
		protected.GET("/me", hb.Auth.MeHandler)
		protected.POST("/logout", hb.Auth.LogoutHandler)
		protected.PUT("/password", hb.Auth.ChangePasswordHandler)
	}
}

// RegisterOnboardingRoutes registers the professional registration wizard.
func RegisterOnboardingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/onboarding")
	{
		api.POST("", hb.Onboarding.StartHandler)
		api.GET("/:sessionID", hb.Onboarding.StateHandler)
		api.PUT("/:sessionID/:step", hb.Onboarding.SubmitStepHandler)
		api.POST("/:sessionID/documents", hb.Onboarding.UploadDocumentHandler)
		api.POST("/:sessionID/finalize", hb.Onboarding.FinalizeHandler)
	}
}

// RegisterProfessionalRoutes registers the professional dashboard.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professional")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Authenticator), middleware.RequireRole(models.RoleProfessional))

		api.GET("/profile", hb.Professional.GetProfileHandler)
		api.PATCH("/profile", hb.Professional.UpdateProfileHandler)

		api.GET("/documents", hb.Professional.ListDocumentsHandler)
		api.POST("/documents", hb.Professional.SubmitDocumentHandler)

		api.GET("/listings", hb.Professional.ListListingsHandler)
		api.POST("/listings", hb.Professional.CreateListingHandler)
		api.PUT("/listings/:id", hb.Professional.UpdateListingHandler)
		api.DELETE("/listings/:id", hb.Professional.DeleteListingHandler)
		api.POST("/listings/:id/publish", hb.Professional.PublishListingHandler)
		api.POST("/listings/:id/unpublish", hb.Professional.UnpublishListingHandler)
		api.POST("/listings/:id/media", hb.Professional.AddMediaHandler)
		api.DELETE("/listings/:id/media/*publicID", hb.Professional.RemoveMediaHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Authenticator), middleware.RequireRole(models.RoleAdmin))

		adminGroup.GET("/users", hb.Admin.ListUsersHandler)
		adminGroup.GET("/users/:id", hb.Admin.GetUserHandler)
		adminGroup.PATCH("/users/:id", hb.Admin.UpdateUserHandler)
		adminGroup.DELETE("/users/:id", hb.Admin.DeleteUserHandler)

		adminGroup.GET("/documents", hb.Admin.ListDocumentsHandler)
		adminGroup.POST("/documents/:id/approve", hb.Admin.ApproveDocumentHandler)
		adminGroup.POST("/documents/:id/reject", hb.Admin.RejectDocumentHandler)
		adminGroup.GET("/documents/:id/url", hb.Admin.DocumentURLHandler)
		adminGroup.GET("/documents/:id/file", hb.Admin.DocumentFileHandler)

		adminGroup.POST("/taxonomy/sectors", hb.Admin.CreateSectorHandler)
		adminGroup.PUT("/taxonomy/sectors/:id", hb.Admin.UpdateSectorHandler)
		adminGroup.DELETE("/taxonomy/sectors/:id", hb.Admin.DeleteSectorHandler)
		adminGroup.POST("/taxonomy/categories", hb.Admin.CreateCategoryHandler)
		adminGroup.PUT("/taxonomy/categories/:id", hb.Admin.UpdateCategoryHandler)
		adminGroup.DELETE("/taxonomy/categories/:id", hb.Admin.DeleteCategoryHandler)
		adminGroup.POST("/taxonomy/subcategories", hb.Admin.CreateSubCategoryHandler)
		adminGroup.PUT("/taxonomy/subcategories/:id", hb.Admin.UpdateSubCategoryHandler)
		adminGroup.DELETE("/taxonomy/subcategories/:id", hb.Admin.DeleteSubCategoryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Marketplace API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, logger *zap.Logger) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterOnboardingRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
