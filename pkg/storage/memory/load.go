package memory

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/ingest"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// Sources names the three delimited-text files backing a snapshot.
type Sources struct {
	Books        string
	Users        string
	Transactions string
}

// Load parses the three sources in parallel and returns a read-only store
// over them. Any parse failure is terminal: a dashboard over partially
// loaded collections would silently under-report, so nothing is returned on
// error.
func Load(ctx context.Context, src Sources) (*Store, error) {
	var (
		books []models.Book
		users []models.User
		txs   []models.Transaction
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = parseFile(src.Books, ingest.ParseBooks)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = parseFile(src.Users, ingest.ParseUsers)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = parseFile(src.Transactions, ingest.ParseTransactions)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(books, users, txs), nil
}

func parseFile[T any](path string, parse func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
