package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cabgo/internal/middleware"
	"cabgo/internal/models"
	"cabgo/internal/services"
	"cabgo/internal/utils"
	"cabgo/pkg/logger"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// WhoAmI echoes the verified caller's uid and decoded claims.
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"uid":    ident.UID,
		"claims": ident.Claims,
	})
}

// BootstrapFirstAdmin grants the caller the admin role, once ever.
func (h *AuthHandler) BootstrapFirstAdmin(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	err := h.authService.BootstrapFirstAdmin(c.Request.Context(), ident.UID, c.GetHeader("X-Bootstrap-Secret"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBootstrapForbidden):
			utils.ForbiddenResponse(c, "Invalid bootstrap secret")
		case errors.Is(err, services.ErrAdminExists):
			utils.ConflictResponse(c, "Admin already exists")
		default:
			h.logger.WithError(err).Error("Bootstrap failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"success": true,
		"uid":     ident.UID,
		"role":    models.RoleAdmin,
	})
}

type setRoleRequest struct {
	UID  string      `json:"uid"`
	Role models.Role `json:"role"`
}

// SetUserRole assigns a role to another user. Admin-only at the route.
func (h *AuthHandler) SetUserRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid payload. Expected: { uid, role }")
		return
	}

	targetUID := strings.TrimSpace(req.UID)

	if err := h.authService.SetUserRole(c.Request.Context(), targetUID, req.Role); err != nil {
		if errors.Is(err, services.ErrInvalidRolePayload) {
			utils.BadRequestResponse(c, "Invalid payload. Expected: { uid, role }")
			return
		}
		h.logger.WithError(err).Error("Role assignment failed")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"success": true,
		"uid":     targetUID,
		"role":    req.Role,
	})
}
