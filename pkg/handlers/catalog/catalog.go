package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/analytics"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/api"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/mapping"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage"
)

// CatalogHandler serves the raw listings the dashboard tables render:
// books, users and transactions, each row pre-enriched with resolved
// references and derived labels.
type CatalogHandler struct {
	Store storage.Storage
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store storage.Storage) *CatalogHandler {
	return &CatalogHandler{Store: store}
}

// ListBooks handles the catalog listing with shelf-status labels.
func (h *CatalogHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve books: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.Book, len(books))
	for i, b := range books {
		out[i] = mapping.ToApiBook(b)
	}
	writeJSON(w, out)
}

// ListUsers handles the member listing with per-user loan tallies.
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve users: %v", err), http.StatusInternalServerError)
		return
	}
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = mapping.ToApiUser(u, txs)
	}
	writeJSON(w, out)
}

// ListTransactions handles the loan listing with resolved titles, names and
// status labels.
func (h *CatalogHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve books: %v", err), http.StatusInternalServerError)
		return
	}
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve users: %v", err), http.StatusInternalServerError)
		return
	}
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	bookIdx := analytics.IndexBooks(books)
	userIdx := analytics.IndexUsers(users)
	out := make([]*api.Transaction, len(txs))
	for i, t := range txs {
		out[i] = mapping.ToApiTransaction(t, bookIdx[t.BookID], userIdx[t.UserID])
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
