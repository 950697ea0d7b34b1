// Package api defines the JSON wire types served to the dashboard front
// end. They are deliberately flat and join-free: every row already carries
// the resolved titles, names and derived labels it needs to render.
package api

// DashboardStats is the headline block of the dashboard.
type DashboardStats struct {
	TotalBooks     int     `json:"total_books"`
	AvailableBooks int     `json:"available_books"`
	TotalIssued    int     `json:"total_issued"`
	TotalOverdue   int     `json:"total_overdue"`
	TotalFines     float64 `json:"total_fines"`
}

// GenreCount is one slice of the borrow-by-genre distribution chart.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// TopBorrower is one row of the top-borrower ranking.
type TopBorrower struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	BorrowCount int     `json:"borrow_count"`
	TotalFines  float64 `json:"total_fines"`
}

// OverdueTransaction is one row of the overdue listing, enriched with its
// resolved book and user. BookTitle and UserName fall back to "N/A" when the
// reference dangles.
type OverdueTransaction struct {
	TransactionID string  `json:"transaction_id"`
	BookID        string  `json:"book_id"`
	BookTitle     string  `json:"book_title"`
	BookAuthor    string  `json:"book_author"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	DaysOverdue   int     `json:"days_overdue"`
	Fine          float64 `json:"fine"`
}

// Book is one row of the catalog listing with its derived shelf status.
type Book struct {
	BookID          string `json:"book_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
	Status          string `json:"status"`
}

// User is one row of the member listing with its loan tallies.
type User struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BorrowCount int     `json:"borrow_count"`
	TotalFines  float64 `json:"total_fines"`
}

// Transaction is one row of the loan listing with resolved references and
// its derived status label. ReturnDate is empty while the loan is open.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	BookID        string  `json:"book_id"`
	BookTitle     string  `json:"book_title"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	ReturnDate    string  `json:"return_date,omitempty"`
	Fine          float64 `json:"fine"`
	Status        string  `json:"status"`
}
