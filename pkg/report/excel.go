// Package report turns the record collections and the aggregation outputs
// into export artifacts: a multi-sheet spreadsheet and a flat overdue-only
// CSV. Both are rebuilt from the collections on every call; nothing in here
// holds state.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/analytics"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// Currency is the glyph prefixed to fine amounts in textual exports.
const Currency = "₹"

const borrowersSheetLimit = 20

// Filename is the dated workbook name offered for download.
func Filename(now time.Time) string {
	return "Library_Report_" + now.Format("2006-01-02") + ".xlsx"
}

func money(v float64) string {
	return Currency + strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildWorkbook assembles the full report: Summary, Books Catalog,
// Transactions, Top Borrowers, Genre Distribution, Overdue Books and Users
// sheets, in that order.
func BuildWorkbook(books []models.Book, users []models.User, txs []models.Transaction, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	type section struct {
		name  string
		build func(f *excelize.File, sheet string) error
	}
	sections := []section{
		{"Summary", func(f *excelize.File, sheet string) error { return writeSummary(f, sheet, books, users, txs, now) }},
		{"Books Catalog", func(f *excelize.File, sheet string) error { return writeBooks(f, sheet, books) }},
		{"Transactions", func(f *excelize.File, sheet string) error { return writeTransactions(f, sheet, books, users, txs) }},
		{"Top Borrowers", func(f *excelize.File, sheet string) error { return writeBorrowers(f, sheet, users, txs) }},
		{"Genre Distribution", func(f *excelize.File, sheet string) error { return writeGenres(f, sheet, books, txs) }},
		{"Overdue Books", func(f *excelize.File, sheet string) error { return writeOverdue(f, sheet, books, users, txs, now) }},
		{"Users", func(f *excelize.File, sheet string) error { return writeUsers(f, sheet, users, txs) }},
	}

	for _, sec := range sections {
		if _, err := f.NewSheet(sec.name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sec.name, err)
		}
		if err := sec.build(f, sec.name); err != nil {
			return nil, fmt.Errorf("build sheet %q: %w", sec.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex("Summary")
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, sheet string, books []models.Book, users []models.User, txs []models.Transaction, now time.Time) error {
	stats := analytics.CalculateStats(books, txs)
	returned := 0
	for _, t := range txs {
		if !t.Open() {
			returned++
		}
	}

	rows := [][]any{
		{"Digital Library Access Tracker - Summary Report"},
		{"Generated on:", now.Format("02 Jan 2006 15:04")},
		{},
		{"Metric", "Value"},
		{"Total Books (All Copies)", stats.TotalBooks},
		{"Available Books", stats.AvailableBooks},
		{"Currently Issued", stats.TotalIssued},
		{"Overdue Books", stats.TotalOverdue},
		{"Total Fines Accumulated", money(stats.TotalFines)},
		{},
		{"Additional Statistics"},
		{"Unique Book Titles", len(books)},
		{"Total Users", len(users)},
		{"Total Transactions", len(txs)},
		{"Books Returned", returned},
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 20)
}

func writeBooks(f *excelize.File, sheet string, books []models.Book) error {
	rows := [][]any{
		{"Book ID", "Title", "Author", "Genre", "Available Copies", "Total Copies", "Status"},
	}
	for _, b := range books {
		rows = append(rows, []any{
			b.ID, b.Title, b.Author, b.Genre,
			b.AvailableCopies, b.TotalCopies,
			analytics.AvailabilityLabel(b),
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "C", 30)
}

func writeTransactions(f *excelize.File, sheet string, books []models.Book, users []models.User, txs []models.Transaction) error {
	bookIdx := analytics.IndexBooks(books)
	userIdx := analytics.IndexUsers(users)

	rows := [][]any{
		{"Transaction ID", "Book ID", "Book Title", "User ID", "User Name", "Issue Date", "Due Date", "Return Date", "Fine", "Status"},
	}
	for _, t := range txs {
		title, name := "N/A", "N/A"
		if b, ok := bookIdx[t.BookID]; ok {
			title = b.Title
		}
		if u, ok := userIdx[t.UserID]; ok {
			name = u.Name
		}
		returnDate := "Not Returned"
		if t.ReturnDate != nil {
			returnDate = t.ReturnDate.String()
		}
		rows = append(rows, []any{
			t.ID, t.BookID, title, t.UserID, name,
			t.IssueDate.String(), t.DueDate.String(), returnDate,
			money(t.Fine), analytics.StatusLabel(t),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeBorrowers(f *excelize.File, sheet string, users []models.User, txs []models.Transaction) error {
	rows := [][]any{
		{"Rank", "User ID", "Name", "Books Borrowed", "Total Fines"},
	}
	for i, b := range analytics.TopBorrowers(txs, users, borrowersSheetLimit) {
		rows = append(rows, []any{i + 1, b.UserID, b.Name, b.BorrowCount, money(b.TotalFines)})
	}
	return writeRows(f, sheet, rows)
}

func writeGenres(f *excelize.File, sheet string, books []models.Book, txs []models.Transaction) error {
	dist := analytics.GenreDistribution(books, txs)
	total := 0
	for _, g := range dist {
		total += g.Count
	}

	rows := [][]any{
		{"Genre", "Times Borrowed", "Percentage"},
	}
	for _, g := range dist {
		pct := 0.0
		if total > 0 {
			pct = float64(g.Count) / float64(total) * 100
		}
		rows = append(rows, []any{g.Genre, g.Count, fmt.Sprintf("%.2f%%", pct)})
	}
	return writeRows(f, sheet, rows)
}

func writeOverdue(f *excelize.File, sheet string, books []models.Book, users []models.User, txs []models.Transaction, now time.Time) error {
	rows := [][]any{
		{"Transaction ID", "Book Title", "Author", "Borrower Name", "User ID", "Issue Date", "Due Date", "Days Overdue", "Fine"},
	}
	for _, o := range analytics.OverdueLoans(txs, books, users) {
		title, author, name := "N/A", "N/A", "N/A"
		if o.Book != nil {
			title, author = o.Book.Title, o.Book.Author
		}
		if o.User != nil {
			name = o.User.Name
		}
		rows = append(rows, []any{
			o.ID, title, author, name, o.UserID,
			o.IssueDate.String(), o.DueDate.String(),
			analytics.DaysOverdue(o.Transaction, now), money(o.Fine),
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 35)
}

func writeUsers(f *excelize.File, sheet string, users []models.User, txs []models.Transaction) error {
	rows := [][]any{
		{"User ID", "Name", "Email", "Phone", "Books Borrowed", "Total Fines"},
	}
	for _, u := range users {
		// Dedicated filter-and-sum over the full loan history for this user.
		count := 0
		fines := 0.0
		for _, t := range txs {
			if t.UserID == u.ID {
				count++
				fines += t.Fine
			}
		}
		rows = append(rows, []any{u.ID, u.Name, u.Email, u.Phone, count, money(fines)})
	}
	return writeRows(f, sheet, rows)
}
