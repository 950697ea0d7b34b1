package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

// ParseError describes malformed source text. Parsing fails fast instead of
// producing partial or corrupted records; nothing downstream can run without
// a clean load.
type ParseError struct {
	Source string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s", e.Source, e.Msg)
}

// table holds a parsed header-first delimited text: a column index and the
// raw data rows. Values containing the delimiter are not supported; there is
// no quoting or escaping in the source format.
type table struct {
	source  string
	columns map[string]int
	rows    [][]string
}

// readTable splits header-first comma-delimited text into a table. Short
// rows are tolerated (missing cells read as absent); an empty input or a
// header missing one of the required columns is a ParseError.
func readTable(source string, r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Source: source, Msg: err.Error()}
	}
	if len(records) == 0 {
		return nil, &ParseError{Source: source, Msg: "empty input: expected a header row"}
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, &ParseError{Source: source, Msg: fmt.Sprintf("missing required column %q", name)}
		}
	}

	return &table{source: source, columns: columns, rows: records[1:]}, nil
}

// cell returns the trimmed value at the named column, or ok=false when the
// row is short or the value is empty. Empty never masquerades as a value.
func (t *table) cell(row []string, name string) (string, bool) {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", false
	}
	return v, true
}

// intCell coerces a numeric column to an int; absent reads as zero.
func (t *table) intCell(row []string, line int, name string) (int, error) {
	v, ok := t.cell(row, name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ParseError{Source: t.source, Line: line, Msg: fmt.Sprintf("column %q: %q is not a whole number", name, v)}
	}
	return n, nil
}

// amountCell coerces a numeric column to a float64; absent reads as zero.
func (t *table) amountCell(row []string, line int, name string) (float64, error) {
	v, ok := t.cell(row, name)
	if !ok {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Source: t.source, Line: line, Msg: fmt.Sprintf("column %q: %q is not a number", name, v)}
	}
	return f, nil
}

// dateCell parses a required DD-MM-YYYY column.
func (t *table) dateCell(row []string, line int, name string) (models.Date, error) {
	v, ok := t.cell(row, name)
	if !ok {
		return models.Date{}, &ParseError{Source: t.source, Line: line, Msg: fmt.Sprintf("column %q: missing date", name)}
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}, &ParseError{Source: t.source, Line: line, Msg: fmt.Sprintf("column %q: %v", name, err)}
	}
	return d, nil
}

// ParseBooks parses the books snapshot.
func ParseBooks(r io.Reader) ([]models.Book, error) {
	t, err := readTable("books", r, "book_id", "title", "available_copies", "total_copies")
	if err != nil {
		return nil, err
	}

	books := make([]models.Book, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2 // line 1 is the header
		b := models.Book{}
		b.ID, _ = t.cell(row, "book_id")
		b.Title, _ = t.cell(row, "title")
		b.Author, _ = t.cell(row, "author")
		b.Genre, _ = t.cell(row, "genre")
		if b.AvailableCopies, err = t.intCell(row, line, "available_copies"); err != nil {
			return nil, err
		}
		if b.TotalCopies, err = t.intCell(row, line, "total_copies"); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// ParseUsers parses the users snapshot.
func ParseUsers(r io.Reader) ([]models.User, error) {
	t, err := readTable("users", r, "user_id", "name")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(t.rows))
	for _, row := range t.rows {
		u := models.User{}
		u.ID, _ = t.cell(row, "user_id")
		u.Name, _ = t.cell(row, "name")
		u.Email, _ = t.cell(row, "email")
		u.Phone, _ = t.cell(row, "phone")
		users = append(users, u)
	}
	return users, nil
}

// ParseTransactions parses the loan snapshot. return_date is the only
// optional date: an absent cell means the loan is still open.
func ParseTransactions(r io.Reader) ([]models.Transaction, error) {
	t, err := readTable("transactions", r, "transaction_id", "book_id", "user_id", "issue_date", "due_date")
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		tx := models.Transaction{}
		tx.ID, _ = t.cell(row, "transaction_id")
		tx.BookID, _ = t.cell(row, "book_id")
		tx.UserID, _ = t.cell(row, "user_id")
		if tx.IssueDate, err = t.dateCell(row, line, "issue_date"); err != nil {
			return nil, err
		}
		if tx.DueDate, err = t.dateCell(row, line, "due_date"); err != nil {
			return nil, err
		}
		if v, ok := t.cell(row, "return_date"); ok {
			d, err := models.ParseDate(v)
			if err != nil {
				return nil, &ParseError{Source: t.source, Line: line, Msg: fmt.Sprintf("column %q: %v", "return_date", err)}
			}
			tx.ReturnDate = &d
		}
		if tx.Fine, err = t.amountCell(row, line, "fine"); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
