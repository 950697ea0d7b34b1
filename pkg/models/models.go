package models

// Book is an immutable catalog snapshot entry. Copy counts are
// multiplicity-aware: TotalCopies is how many physical copies the library
// owns, AvailableCopies how many are currently on the shelf.
type Book struct {
	ID              string `json:"book_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	AvailableCopies int    `json:"available_copies"`
	TotalCopies     int    `json:"total_copies"`
}

// User is an immutable snapshot of a registered library member.
type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Transaction is a single loan record. BookID and UserID are foreign keys
// into the Book and User collections and may dangle; lookups against them
// are best-effort. A nil ReturnDate means the loan is still open.
type Transaction struct {
	ID         string  `json:"transaction_id"`
	BookID     string  `json:"book_id"`
	UserID     string  `json:"user_id"`
	IssueDate  Date    `json:"issue_date"`
	DueDate    Date    `json:"due_date"`
	ReturnDate *Date   `json:"return_date"`
	Fine       float64 `json:"fine"`
}

// Open reports whether the loan has not been returned yet.
func (t Transaction) Open() bool {
	return t.ReturnDate == nil
}

// Overdue reports whether the loan is open and has accrued a fine. Fine
// presence is the authoritative overdue signal; due-date comparison only
// feeds the cosmetic days-overdue column in exports.
func (t Transaction) Overdue() bool {
	return t.Open() && t.Fine > 0
}
