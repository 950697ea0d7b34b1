package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/handlers"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage/memory"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	sources := memory.Sources{
		Books:        envOr("BOOKS_CSV", "data/books.csv"),
		Users:        envOr("USERS_CSV", "data/users.csv"),
		Transactions: envOr("TRANSACTIONS_CSV", "data/transactions.csv"),
	}

	// The collections load once and are read-only for the life of the
	// process; a failed load is terminal rather than serving empty data.
	store, err := memory.Load(context.Background(), sources)
	if err != nil {
		logger.Error("failed to load library snapshot", "error", err)
		os.Exit(1)
	}

	books, _ := store.ListBooks(context.Background())
	users, _ := store.ListUsers(context.Background())
	txs, _ := store.ListTransactions(context.Background())
	logger.Info("library snapshot loaded",
		"books", len(books), "users", len(users), "transactions", len(txs))

	router := handlers.NewRouter(store, logger, nil)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	logger.Info("starting server", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
