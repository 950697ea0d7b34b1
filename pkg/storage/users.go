package storage

import (
	"context"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// UserReader defines the interface for reading the member snapshot.
type UserReader interface {
	// ListUsers returns every registered user. The returned slice is a
	// shared immutable snapshot; callers must not modify it.
	ListUsers(ctx context.Context) ([]models.User, error)
}
