package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/report"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves the two export artifacts as attachment downloads.
// Export failures surface to the caller and are not retried; the in-memory
// snapshot is never affected.
type ReportsHandler struct {
	Store storage.Storage
	Now   func() time.Time
}

// NewReportsHandler creates a new ReportsHandler. now is injectable for
// tests; nil means time.Now.
func NewReportsHandler(store storage.Storage, now func() time.Time) *ReportsHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportsHandler{Store: store, Now: now}
}

// DownloadWorkbook streams the multi-sheet spreadsheet report.
func (h *ReportsHandler) DownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	books, users, txs, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	now := h.Now()
	wb, err := report.BuildWorkbook(books, users, txs, now)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build report: %v", err), http.StatusInternalServerError)
		return
	}
	defer wb.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(now)))
	if err := wb.Write(w); err != nil {
		// Headers are already on the wire; all we can do is log.
		slog.ErrorContext(r.Context(), "Failed to stream workbook", "error", err)
	}
}

// DownloadOverdueCSV streams the flat overdue-only export.
func (h *ReportsHandler) DownloadOverdueCSV(w http.ResponseWriter, r *http.Request) {
	books, users, txs, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	now := h.Now()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.OverdueFilename(now)))
	if err := report.WriteOverdueCSV(w, books, users, txs); err != nil {
		slog.ErrorContext(r.Context(), "Failed to stream overdue export", "error", err)
	}
}

func (h *ReportsHandler) snapshot(w http.ResponseWriter, r *http.Request) (books []models.Book, users []models.User, txs []models.Transaction, ok bool) {
	var err error
	if books, err = h.Store.ListBooks(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve books: %v", err), http.StatusInternalServerError)
		return nil, nil, nil, false
	}
	if users, err = h.Store.ListUsers(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve users: %v", err), http.StatusInternalServerError)
		return nil, nil, nil, false
	}
	if txs, err = h.Store.ListTransactions(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return nil, nil, nil, false
	}
	return books, users, txs, true
}
