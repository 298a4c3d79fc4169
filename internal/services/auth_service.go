package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"cabgo/internal/models"
	"cabgo/internal/repositories/interfaces"
	"cabgo/pkg/identity"
	"cabgo/pkg/logger"
)

// AuthService owns role state: the one-time admin bootstrap and admin
// role assignment. Both perform the same dual write, identity-provider
// claims first, then the store's user record. The window between the two
// writes is tolerated; the role sync reactor reconciles it.
type AuthService interface {
	// BootstrapFirstAdmin grants the caller the admin role, but only
	// when providedSecret matches the configured bootstrap secret and
	// no admin record exists yet. The conflict check is what closes
	// this path permanently, not route removal.
	BootstrapFirstAdmin(ctx context.Context, uid, providedSecret string) error

	// SetUserRole assigns one of the fixed roles to targetUID. Admin
	// privilege is enforced at the route; invalid input is rejected
	// before any write happens.
	SetUserRole(ctx context.Context, targetUID string, role models.Role) error
}

type authService struct {
	userRepo        interfaces.UserRepository
	provider        identity.Provider
	bootstrapSecret string
	logger          *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	provider identity.Provider,
	bootstrapSecret string,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		provider:        provider,
		bootstrapSecret: bootstrapSecret,
		logger:          logger,
	}
}

func (s *authService) BootstrapFirstAdmin(ctx context.Context, uid, providedSecret string) error {
	// An unset secret disables bootstrap outright rather than matching
	// an empty header.
	if s.bootstrapSecret == "" || providedSecret == "" {
		return ErrBootstrapForbidden
	}
	if subtle.ConstantTimeCompare([]byte(providedSecret), []byte(s.bootstrapSecret)) != 1 {
		return ErrBootstrapForbidden
	}

	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrAdminExists
	}

	if err := s.assignRole(ctx, uid, models.RoleAdmin); err != nil {
		return err
	}

	s.logger.WithUID(uid).Info("First admin bootstrapped")
	return nil
}

func (s *authService) SetUserRole(ctx context.Context, targetUID string, role models.Role) error {
	targetUID = strings.TrimSpace(targetUID)
	if targetUID == "" || !role.IsValid() {
		return ErrInvalidRolePayload
	}

	if err := s.assignRole(ctx, targetUID, role); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"uid":  targetUID,
		"role": role,
	}).Info("User role assigned")
	return nil
}

// assignRole is the dual write. If the claims write succeeds and the
// record write fails the two systems disagree until the role sync
// reactor observes the next record write; that is accepted behavior.
func (s *authService) assignRole(ctx context.Context, uid string, role models.Role) error {
	claims := map[string]interface{}{
		"role":  string(role),
		"admin": role == models.RoleAdmin,
	}

	if err := s.provider.SetCustomClaims(ctx, uid, claims); err != nil {
		return err
	}

	return s.userRepo.UpsertRole(ctx, uid, role)
}
