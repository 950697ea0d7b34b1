// Package memory implements the storage interfaces over in-memory snapshots
// loaded once from the three delimited-text sources. The collections are
// never mutated after load, so the store is safe for concurrent readers
// without locking.
package memory

import (
	"context"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage"
)

// Store holds the three immutable record collections.
type Store struct {
	books        []models.Book
	users        []models.User
	transactions []models.Transaction
}

// New creates a Store over already-parsed collections.
func New(books []models.Book, users []models.User, transactions []models.Transaction) *Store {
	return &Store{books: books, users: users, transactions: transactions}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.books, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions, nil
}
