package storage

import (
	"context"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// TransactionReader defines the interface for reading the loan snapshot.
type TransactionReader interface {
	// ListTransactions returns every loan record, open and returned alike.
	// The returned slice is a shared immutable snapshot; callers must not
	// modify it.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}
