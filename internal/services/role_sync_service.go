package services

import (
	"context"

	"cabgo/internal/models"
	"cabgo/pkg/database"
	"cabgo/pkg/identity"
	"cabgo/pkg/logger"
)

// RoleSyncService is the reactor that mirrors the role field of user
// records into the identity provider's custom claims. It covers the gap
// left by the dual write in AuthService and also picks up writes made
// outside this service (manual edits, migrations).
type RoleSyncService interface {
	// HandleRoleChange reconciles one observed write. A write that did
	// not change the role, or left it absent, is a no-op; that equality
	// check is also what stops reaction loops, since claim writes never
	// touch the users collection.
	HandleRoleChange(ctx context.Context, uid, beforeRole, afterRole string) error

	// Run consumes the users-collection watcher until ctx is cancelled
	// or the stream fails. No catch-up replay: a restart resumes from
	// the present.
	Run(ctx context.Context) error
}

type roleSyncService struct {
	watcher  *database.FieldWatcher
	provider identity.Provider
	logger   *logger.Logger
}

func NewRoleSyncService(watcher *database.FieldWatcher, provider identity.Provider, logger *logger.Logger) RoleSyncService {
	return &roleSyncService{
		watcher:  watcher,
		provider: provider,
		logger:   logger,
	}
}

func (s *roleSyncService) HandleRoleChange(ctx context.Context, uid, beforeRole, afterRole string) error {
	if afterRole == "" || beforeRole == afterRole {
		return nil
	}

	current, err := s.provider.CustomClaims(ctx, uid)
	if err != nil {
		return err
	}

	// Overlay onto the existing claim set so unrelated claims survive.
	merged := make(map[string]interface{}, len(current)+2)
	for k, v := range current {
		merged[k] = v
	}
	merged["role"] = afterRole
	merged["admin"] = afterRole == string(models.RoleAdmin)

	if err := s.provider.SetCustomClaims(ctx, uid, merged); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"uid":  uid,
		"role": afterRole,
	}).Info("Role claims synced")
	return nil
}

func (s *roleSyncService) Run(ctx context.Context) error {
	return s.watcher.Watch(ctx, func(ctx context.Context, change database.FieldChange) error {
		return s.HandleRoleChange(ctx, change.Key, change.Before, change.After)
	})
}
