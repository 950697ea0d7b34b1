package analytics

import (
	"time"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// Availability labels for the catalog listing and the Books Catalog sheet.
const (
	StatusAvailable    = "Available"
	StatusLowStock     = "Low Stock"
	StatusNotAvailable = "Not Available"
)

// Loan status labels for transaction listings and the Transactions sheet.
const (
	LoanReturned = "Returned"
	LoanOverdue  = "Overdue"
	LoanIssued   = "Issued"
)

// AvailabilityLabel derives the shelf status of a book: out of copies, below
// half of its total stock, or available.
func AvailabilityLabel(b models.Book) string {
	switch {
	case b.AvailableCopies == 0:
		return StatusNotAvailable
	case 2*b.AvailableCopies < b.TotalCopies:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// StatusLabel derives the loan status using the same overdue definition as
// the aggregation engine.
func StatusLabel(t models.Transaction) string {
	switch {
	case !t.Open():
		return LoanReturned
	case t.Fine > 0:
		return LoanOverdue
	default:
		return LoanIssued
	}
}

// DaysOverdue is the whole number of days the loan is past due at the given
// instant, clamped to zero when the due date has not passed.
func DaysOverdue(t models.Transaction, now time.Time) int {
	days := int(now.Sub(t.DueDate.Time) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}
