// Package analytics is the aggregation engine: pure functions that derive
// dashboard statistics from the raw record collections. Every function
// recomputes from scratch on each call and never mutates its inputs, so the
// collections can be shared across concurrent report requests without locks.
//
// Foreign-key joins are best-effort: a transaction referencing an unknown
// book or user degrades to a placeholder instead of failing. The UI depends
// on that, so none of these functions return errors.
package analytics

import (
	"sort"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// PlaceholderName stands in for a borrower whose user record cannot be
// resolved.
const PlaceholderName = "Unknown"

// DefaultBorrowerLimit is the top-borrower truncation used when the caller
// does not ask for a specific limit.
const DefaultBorrowerLimit = 10

// Stats is the dashboard headline block.
type Stats struct {
	TotalBooks     int     // sum of total_copies across the catalog
	AvailableBooks int     // sum of available_copies across the catalog
	TotalIssued    int     // open loans
	TotalOverdue   int     // open loans carrying a fine
	TotalFines     float64 // fines across ALL loans, returned ones included
}

// GenreCount is one slice of the borrow-by-genre distribution.
type GenreCount struct {
	Genre string
	Count int
}

// Borrower is one entry of the top-borrower ranking.
type Borrower struct {
	UserID      string
	Name        string
	BorrowCount int
	TotalFines  float64
}

// OverdueLoan is a transaction enriched with its resolved book and user so
// the presentation layer can render it without further joins. Either pointer
// is nil when the foreign key dangles.
type OverdueLoan struct {
	models.Transaction
	Book *models.Book
	User *models.User
}

// IndexBooks builds a lookup by book ID. Collections are small (a campus
// library), but a hash index keeps the join cost linear either way.
func IndexBooks(books []models.Book) map[string]*models.Book {
	idx := make(map[string]*models.Book, len(books))
	for i := range books {
		idx[books[i].ID] = &books[i]
	}
	return idx
}

// IndexUsers builds a lookup by user ID.
func IndexUsers(users []models.User) map[string]*models.User {
	idx := make(map[string]*models.User, len(users))
	for i := range users {
		idx[users[i].ID] = &users[i]
	}
	return idx
}

// CalculateStats computes the dashboard totals. The fine total is a straight
// sum with no filtering: fines accrued before a return still count.
func CalculateStats(books []models.Book, txs []models.Transaction) Stats {
	var s Stats
	for _, b := range books {
		s.TotalBooks += b.TotalCopies
		s.AvailableBooks += b.AvailableCopies
	}
	for _, t := range txs {
		if t.Open() {
			s.TotalIssued++
		}
		if t.Overdue() {
			s.TotalOverdue++
		}
		s.TotalFines += t.Fine
	}
	return s
}

// GenreDistribution counts borrows per genre, resolving each transaction's
// book by foreign key. Transactions with unresolved book references are
// silently dropped. The result is sorted by count descending; ties keep the
// order in which each genre was first seen.
func GenreDistribution(books []models.Book, txs []models.Transaction) []GenreCount {
	byID := IndexBooks(books)

	counts := make(map[string]int)
	var order []string
	for _, t := range txs {
		book, ok := byID[t.BookID]
		if !ok {
			continue
		}
		if _, seen := counts[book.Genre]; !seen {
			order = append(order, book.Genre)
		}
		counts[book.Genre]++
	}

	dist := make([]GenreCount, 0, len(order))
	for _, genre := range order {
		dist = append(dist, GenreCount{Genre: genre, Count: counts[genre]})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// TopBorrowers ranks users by how many loans they hold across the whole
// history, open or returned, accumulating their fine totals along the way.
// Unresolved users rank under a placeholder name. The result is sorted by
// borrow count descending (stable on first-seen order for ties) and
// truncated to limit; a non-positive limit means DefaultBorrowerLimit.
func TopBorrowers(txs []models.Transaction, users []models.User, limit int) []Borrower {
	if limit <= 0 {
		limit = DefaultBorrowerLimit
	}
	byID := IndexUsers(users)

	type tally struct {
		count int
		fines float64
	}
	tallies := make(map[string]*tally)
	var order []string
	for _, t := range txs {
		agg, seen := tallies[t.UserID]
		if !seen {
			agg = &tally{}
			tallies[t.UserID] = agg
			order = append(order, t.UserID)
		}
		agg.count++
		agg.fines += t.Fine
	}

	borrowers := make([]Borrower, 0, len(order))
	for _, id := range order {
		name := PlaceholderName
		if u, ok := byID[id]; ok {
			name = u.Name
		}
		borrowers = append(borrowers, Borrower{
			UserID:      id,
			Name:        name,
			BorrowCount: tallies[id].count,
			TotalFines:  tallies[id].fines,
		})
	}
	sort.SliceStable(borrowers, func(i, j int) bool { return borrowers[i].BorrowCount > borrowers[j].BorrowCount })

	if len(borrowers) > limit {
		borrowers = borrowers[:limit]
	}
	return borrowers
}

// OverdueLoans filters to open-and-fined loans, enriches each with its
// resolved book and user, and sorts by fine descending (stable on input
// order for ties).
func OverdueLoans(txs []models.Transaction, books []models.Book, users []models.User) []OverdueLoan {
	bookIdx := IndexBooks(books)
	userIdx := IndexUsers(users)

	var overdue []OverdueLoan
	for _, t := range txs {
		if !t.Overdue() {
			continue
		}
		overdue = append(overdue, OverdueLoan{
			Transaction: t,
			Book:        bookIdx[t.BookID],
			User:        userIdx[t.UserID],
		})
	}
	sort.SliceStable(overdue, func(i, j int) bool { return overdue[i].Fine > overdue[j].Fine })
	return overdue
}
