// Command export materializes both report artifacts to disk in one shot:
// the multi-sheet workbook and the overdue-only CSV, named with the current
// date. It shares the loader and serializer with the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/report"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage/memory"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	sources := memory.Sources{
		Books:        envOr("BOOKS_CSV", "data/books.csv"),
		Users:        envOr("USERS_CSV", "data/users.csv"),
		Transactions: envOr("TRANSACTIONS_CSV", "data/transactions.csv"),
	}
	outDir := envOr("OUTPUT_DIR", ".")

	store, err := memory.Load(context.Background(), sources)
	if err != nil {
		logger.Error("failed to load library snapshot", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	books, _ := store.ListBooks(ctx)
	users, _ := store.ListUsers(ctx)
	txs, _ := store.ListTransactions(ctx)

	now := time.Now()

	wb, err := report.BuildWorkbook(books, users, txs, now)
	if err != nil {
		logger.Error("failed to build workbook", "error", err)
		os.Exit(1)
	}
	defer wb.Close()

	workbookPath := filepath.Join(outDir, report.Filename(now))
	if err := wb.SaveAs(workbookPath); err != nil {
		logger.Error("failed to save workbook", "path", workbookPath, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", workbookPath)

	overduePath := filepath.Join(outDir, report.OverdueFilename(now))
	f, err := os.Create(overduePath)
	if err != nil {
		logger.Error("failed to create overdue export", "path", overduePath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := report.WriteOverdueCSV(f, books, users, txs); err != nil {
		logger.Error("failed to write overdue export", "path", overduePath, "error", err)
		os.Exit(1)
	}
	logger.Info("overdue export written", "path", overduePath)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
