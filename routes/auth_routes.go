package routes

import (
	"github.com/gin-gonic/gin"

	"cabgo/internal/handlers"
	"cabgo/internal/middleware"
	"cabgo/pkg/identity"
)

// SetupAuthRoutes registers identity and role-management routes.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, provider identity.Provider) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRequired(provider))
	{
		auth.GET("/whoami", authHandler.WhoAmI)
		auth.POST("/bootstrap-admin", authHandler.BootstrapFirstAdmin)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(provider), middleware.AdminRequired())
	{
		admin.POST("/users/role", authHandler.SetUserRole)
	}
}
