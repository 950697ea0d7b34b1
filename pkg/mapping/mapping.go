package mapping

import (
	"time"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/analytics"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/api"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// placeholder is rendered wherever a foreign key fails to resolve.
const placeholder = "N/A"

// ToApiStats converts the aggregation engine's stats to the API model.
func ToApiStats(s analytics.Stats) *api.DashboardStats {
	return &api.DashboardStats{
		TotalBooks:     s.TotalBooks,
		AvailableBooks: s.AvailableBooks,
		TotalIssued:    s.TotalIssued,
		TotalOverdue:   s.TotalOverdue,
		TotalFines:     s.TotalFines,
	}
}

// ToApiGenreCount converts one genre distribution entry to the API model.
func ToApiGenreCount(g analytics.GenreCount) *api.GenreCount {
	return &api.GenreCount{Genre: g.Genre, Count: g.Count}
}

// ToApiTopBorrower converts one borrower ranking entry to the API model.
func ToApiTopBorrower(b analytics.Borrower) *api.TopBorrower {
	return &api.TopBorrower{
		UserID:      b.UserID,
		Name:        b.Name,
		BorrowCount: b.BorrowCount,
		TotalFines:  b.TotalFines,
	}
}

// ToApiOverdue converts an enriched overdue loan to the API model, filling
// placeholders for unresolved references.
func ToApiOverdue(o analytics.OverdueLoan, now time.Time) *api.OverdueTransaction {
	out := &api.OverdueTransaction{
		TransactionID: o.ID,
		BookID:        o.BookID,
		BookTitle:     placeholder,
		BookAuthor:    placeholder,
		UserID:        o.UserID,
		UserName:      placeholder,
		IssueDate:     o.IssueDate.String(),
		DueDate:       o.DueDate.String(),
		DaysOverdue:   analytics.DaysOverdue(o.Transaction, now),
		Fine:          o.Fine,
	}
	if o.Book != nil {
		out.BookTitle = o.Book.Title
		out.BookAuthor = o.Book.Author
	}
	if o.User != nil {
		out.UserName = o.User.Name
	}
	return out
}

// ToApiBook converts a catalog entry to the API model with its derived
// shelf status.
func ToApiBook(b models.Book) *api.Book {
	return &api.Book{
		BookID:          b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
		AvailableCopies: b.AvailableCopies,
		TotalCopies:     b.TotalCopies,
		Status:          analytics.AvailabilityLabel(b),
	}
}

// ToApiUser converts a member to the API model, tallying their loan count
// and fine total over the full transaction history.
func ToApiUser(u models.User, txs []models.Transaction) *api.User {
	out := &api.User{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
	}
	for _, t := range txs {
		if t.UserID == u.ID {
			out.BorrowCount++
			out.TotalFines += t.Fine
		}
	}
	return out
}

// ToApiTransaction converts a loan to the API model. book and user are the
// results of best-effort foreign-key resolution and may be nil.
func ToApiTransaction(t models.Transaction, book *models.Book, user *models.User) *api.Transaction {
	out := &api.Transaction{
		TransactionID: t.ID,
		BookID:        t.BookID,
		BookTitle:     placeholder,
		UserID:        t.UserID,
		UserName:      placeholder,
		IssueDate:     t.IssueDate.String(),
		DueDate:       t.DueDate.String(),
		Fine:          t.Fine,
		Status:        analytics.StatusLabel(t),
	}
	if t.ReturnDate != nil {
		out.ReturnDate = t.ReturnDate.String()
	}
	if book != nil {
		out.BookTitle = book.Title
	}
	if user != nil {
		out.UserName = user.Name
	}
	return out
}
