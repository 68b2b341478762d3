package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vertgarden/gardenhub/internal/authz"
	"vertgarden/gardenhub/internal/config"
	"vertgarden/gardenhub/internal/handler/middleware"
	jwtpkg "vertgarden/gardenhub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	engine *authz.Engine,
	authHandler *AuthHandler,
	invitationHandler *InvitationHandler,
	inventoryHandler *InventoryHandler,
	permissionHandler *PermissionHandler,
	userHandler *UserHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Public code check used by the registration form. Read-only: a code is
	// never consumed by validation.
	r.POST("/api/v1/invitations/validate", invitationHandler.Validate)

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Inventory items; per-item authorization happens in the service
		// through the decision engine.
		protected.POST("/items", inventoryHandler.Create)
		protected.GET("/items", inventoryHandler.List)
		protected.GET("/items/:id", inventoryHandler.Get)
		protected.PUT("/items/:id", inventoryHandler.Update)
		protected.DELETE("/items/:id", inventoryHandler.Delete)
		protected.POST("/items/:id/usages", inventoryHandler.RecordUsage)
		protected.GET("/items/:id/usages", inventoryHandler.History)

		// Delegated permissions on an item
		protected.POST("/items/:id/permissions", permissionHandler.Grant)
		protected.DELETE("/items/:id/permissions", permissionHandler.Revoke)
		protected.GET("/items/:id/permissions", permissionHandler.List)
	}

	// Invitation management (administrators only, via the role gate)
	invitations := r.Group("/api/v1/invitations")
	invitations.Use(middleware.JWTAuth(jwtManager))
	invitations.Use(middleware.RequireAction(engine, authz.ActionIssueInvitation))
	{
		invitations.POST("", invitationHandler.Issue)
		invitations.GET("/current", invitationHandler.Current)
		invitations.DELETE("/:id", invitationHandler.Delete)
	}

	// User management (administrators only, via the role gate)
	users := r.Group("/api/v1/users")
	users.Use(middleware.JWTAuth(jwtManager))
	users.Use(middleware.RequireAction(engine, authz.ActionManageUsers))
	{
		users.GET("", userHandler.List)
		users.PUT("/:id/role", userHandler.ChangeRole)
		users.DELETE("/:id", userHandler.Delete)
	}

	return r
}
