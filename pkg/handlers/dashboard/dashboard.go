package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/analytics"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/api"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/mapping"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage"
)

// DashboardHandler serves the four aggregation endpoints. It holds the
// snapshot store and recomputes every statistic from scratch per request.
type DashboardHandler struct {
	Store storage.Storage
	Now   func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler. now is injectable for
// tests; nil means time.Now.
func NewDashboardHandler(store storage.Storage, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{Store: store, Now: now}
}

// GetStats handles the dashboard totals.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve books: %v", err), http.StatusInternalServerError)
		return
	}
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	stats := analytics.CalculateStats(books, txs)
	writeJSON(w, mapping.ToApiStats(stats))
}

// GetGenreDistribution handles the borrow-by-genre chart data.
func (h *DashboardHandler) GetGenreDistribution(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve books: %v", err), http.StatusInternalServerError)
		return
	}
	txs, err := h.Store.ListTransactions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	dist := analytics.GenreDistribution(books, txs)
	out := make([]*api.GenreCount, len(dist))
	for i, g := range dist {
		out[i] = mapping.ToApiGenreCount(g)
	}
	writeJSON(w, out)
}

// GetTopBorrowers handles the borrower ranking. An optional ?limit=N query
// parameter truncates the ranking; it defaults to 10.
func (h *DashboardHandler) GetTopBorrowers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, fmt.Sprintf("Invalid limit %q: must be a positive integer", raw), http.StatusBadRequest)
			return
		}
		limit = n
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

	borrowers := analytics.TopBorrowers(txs, users, limit)
	out := make([]*api.TopBorrower, len(borrowers))
	for i, b := range borrowers {
		out[i] = mapping.ToApiTopBorrower(b)
	}
	writeJSON(w, out)
}

// GetOverdueTransactions handles the overdue listing, enriched with
// resolved books and users and sorted by fine descending.
func (h *DashboardHandler) GetOverdueTransactions(w http.ResponseWriter, r *http.Request) {
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

	now := h.Now()
	loans := analytics.OverdueLoans(txs, books, users)
	out := make([]*api.OverdueTransaction, len(loans))
	for i, o := range loans {
		out[i] = mapping.ToApiOverdue(o, now)
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
