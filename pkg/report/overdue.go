package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/analytics"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// OverdueFilename is the dated name of the flat overdue-only export.
func OverdueFilename(now time.Time) string {
	return "Overdue_Report_" + now.Format("2006-01-02") + ".csv"
}

// WriteOverdueCSV writes the overdue-only flat export: one row per
// open-and-fined loan, sorted by fine descending, with unresolved joins
// rendered as "N/A".
func WriteOverdueCSV(w io.Writer, books []models.Book, users []models.User, txs []models.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"User Name", "Book Title", "Issue Date", "Due Date", "Fine"}); err != nil {
		return fmt.Errorf("write overdue header: %w", err)
	}
	for _, o := range analytics.OverdueLoans(txs, books, users) {
		name, title := "N/A", "N/A"
		if o.User != nil {
			name = o.User.Name
		}
		if o.Book != nil {
			title = o.Book.Title
		}
		row := []string{name, title, o.IssueDate.String(), o.DueDate.String(), money(o.Fine)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write overdue row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
