package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/handlers/catalog"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/handlers/dashboard"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/handlers/reports"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/middleware"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage"
)

// NewRouter mounts the full reporting API on a chi router: the four
// aggregation endpoints, the three raw listings and the two export
// downloads, wrapped in request-id, logging, recovery and rate-limit
// middleware.
func NewRouter(store storage.Storage, logger *slog.Logger, now func() time.Time) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RateLimit(rate.Limit(10), 20))

	dash := dashboard.NewDashboardHandler(store, now)
	r.Get("/stats", dash.GetStats)
	r.Get("/genres", dash.GetGenreDistribution)
	r.Get("/borrowers/top", dash.GetTopBorrowers)
	r.Get("/overdue", dash.GetOverdueTransactions)

	cat := catalog.NewCatalogHandler(store)
	r.Get("/books", cat.ListBooks)
	r.Get("/users", cat.ListUsers)
	r.Get("/transactions", cat.ListTransactions)

	rep := reports.NewReportsHandler(store, now)
	r.Get("/exports/report.xlsx", rep.DownloadWorkbook)
	r.Get("/exports/overdue.csv", rep.DownloadOverdueCSV)

	return r
}
