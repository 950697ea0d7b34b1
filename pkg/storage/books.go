package storage

import (
	"context"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// BookReader defines the interface for reading the catalog snapshot.
type BookReader interface {
	// ListBooks returns every book in the catalog. The returned slice is a
	// shared immutable snapshot; callers must not modify it.
	ListBooks(ctx context.Context) ([]models.Book, error)
}
