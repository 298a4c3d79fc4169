package interfaces

import (
	"context"

	"cabgo/internal/models"
)

type UserRepository interface {
	// UpsertRole writes the role mirror record for uid, stamping
	// updated_at. It is the store half of the role dual-write.
	UpsertRole(ctx context.Context, uid string, role models.Role) error

	// AdminExists reports whether any user record carries the admin
	// role. Gates the one-time bootstrap path.
	AdminExists(ctx context.Context) (bool, error)
}
