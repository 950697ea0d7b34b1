package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
)

var testNow = time.Date(2024, 6, 25, 10, 30, 0, 0, time.UTC)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func fixture(t *testing.T) ([]models.Book, []models.User, []models.Transaction) {
	t.Helper()
	books := []models.Book{
		{ID: "B1", Title: "Dune", Author: "Herbert", Genre: "Fiction", AvailableCopies: 2, TotalCopies: 5},
		{ID: "B2", Title: "Sapiens", Author: "Harari", Genre: "History", AvailableCopies: 0, TotalCopies: 2},
	}
	users := []models.User{
		{ID: "U1", Name: "Alice", Email: "alice@example.com", Phone: "555-0101"},
		{ID: "U2", Name: "Bob", Email: "bob@example.com", Phone: "555-0102"},
	}
	returned := date(t, "20-06-2024")
	txs := []models.Transaction{
		{ID: "T1", BookID: "B1", UserID: "U1", IssueDate: date(t, "01-06-2024"), DueDate: date(t, "15-06-2024"), Fine: 20},
		{ID: "T2", BookID: "B2", UserID: "U2", IssueDate: date(t, "05-06-2024"), DueDate: date(t, "19-06-2024"), ReturnDate: &returned, Fine: 5},
		{ID: "T3", BookID: "missing", UserID: "ghost", IssueDate: date(t, "10-06-2024"), DueDate: date(t, "24-06-2024"), Fine: 2},
	}
	return books, users, txs
}

func TestBuildWorkbook(t *testing.T) {
	books, users, txs := fixture(t)

	wb, err := BuildWorkbook(books, users, txs, testNow)
	require.NoError(t, err)
	defer wb.Close()

	t.Run("Sheet Order", func(t *testing.T) {
		assert.Equal(t, []string{
			"Summary", "Books Catalog", "Transactions", "Top Borrowers",
			"Genre Distribution", "Overdue Books", "Users",
		}, wb.GetSheetList())
	})

	t.Run("Summary Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Summary")
		require.NoError(t, err)

		cells := flatten(rows)
		assert.Contains(t, cells, "Digital Library Access Tracker - Summary Report")
		assertMetric(t, rows, "Total Books (All Copies)", "7")
		assertMetric(t, rows, "Available Books", "2")
		assertMetric(t, rows, "Currently Issued", "2")
		assertMetric(t, rows, "Overdue Books", "2")
		assertMetric(t, rows, "Total Fines Accumulated", "₹27")
		assertMetric(t, rows, "Unique Book Titles", "2")
		assertMetric(t, rows, "Total Users", "2")
		assertMetric(t, rows, "Total Transactions", "3")
		assertMetric(t, rows, "Books Returned", "1")
	})

	t.Run("Books Catalog Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Books Catalog")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, "Book ID", rows[0][0])
		assert.Equal(t, []string{"B1", "Dune", "Herbert", "Fiction", "2", "5", "Low Stock"}, rows[1])
		assert.Equal(t, "Not Available", rows[2][6])
	})

	t.Run("Transactions Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, rows, 4)

		// Open fined loan.
		assert.Equal(t, []string{"T1", "B1", "Dune", "U1", "Alice", "01-06-2024", "15-06-2024", "Not Returned", "₹20", "Overdue"}, rows[1])
		// Returned loan keeps its accrued fine.
		assert.Equal(t, "20-06-2024", rows[2][7])
		assert.Equal(t, "Returned", rows[2][9])
		// Dangling references render as placeholders.
		assert.Equal(t, "N/A", rows[3][2])
		assert.Equal(t, "N/A", rows[3][4])
	})

	t.Run("Top Borrowers Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Top Borrowers")
		require.NoError(t, err)
		require.Len(t, rows, 4)

		assert.Equal(t, []string{"Rank", "User ID", "Name", "Books Borrowed", "Total Fines"}, rows[0])
		assert.Equal(t, []string{"1", "U1", "Alice", "1", "₹20"}, rows[1])
		assert.Equal(t, "Unknown", rows[3][2])
	})

	t.Run("Genre Distribution Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Genre Distribution")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, []string{"Fiction", "1", "50.00%"}, rows[1])
		assert.Equal(t, []string{"History", "1", "50.00%"}, rows[2])
	})

	t.Run("Overdue Books Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Overdue Books")
		require.NoError(t, err)
		require.Len(t, rows, 3) // header + T1 + T3; T2 was returned

		assert.Equal(t, "T1", rows[1][0])
		assert.Equal(t, "10", rows[1][7]) // 15-06 → 25-06
		assert.Equal(t, "₹20", rows[1][8])
		assert.Equal(t, "T3", rows[2][0])
		assert.Equal(t, "N/A", rows[2][1])
	})

	t.Run("Users Sheet", func(t *testing.T) {
		rows, err := wb.GetRows("Users")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, []string{"U1", "Alice", "alice@example.com", "555-0101", "1", "₹20"}, rows[1])
		assert.Equal(t, []string{"U2", "Bob", "bob@example.com", "555-0102", "1", "₹5"}, rows[2])
	})
}

func TestBuildWorkbookEmptyCollections(t *testing.T) {
	wb, err := BuildWorkbook(nil, nil, nil, testNow)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Summary")
	require.NoError(t, err)
	assertMetric(t, rows, "Total Books (All Copies)", "0")
	assertMetric(t, rows, "Total Fines Accumulated", "₹0")
}

func TestWriteOverdueCSV(t *testing.T) {
	books, users, txs := fixture(t)

	var buf bytes.Buffer
	err := WriteOverdueCSV(&buf, books, users, txs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "User Name,Book Title,Issue Date,Due Date,Fine", lines[0])
	assert.Equal(t, "Alice,Dune,01-06-2024,15-06-2024,₹20", lines[1])
	assert.Equal(t, "N/A,N/A,10-06-2024,24-06-2024,₹2", lines[2])
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Library_Report_2024-06-25.xlsx", Filename(testNow))
	assert.Equal(t, "Overdue_Report_2024-06-25.csv", OverdueFilename(testNow))
}

// assertMetric checks a two-column label/value row.
func assertMetric(t *testing.T, rows [][]string, label, want string) {
	t.Helper()
	for _, row := range rows {
		if len(row) >= 2 && row[0] == label {
			assert.Equal(t, want, row[1], "metric %q", label)
			return
		}
	}
	t.Errorf("metric %q not found", label)
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
