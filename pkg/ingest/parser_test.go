package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBooks(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		input := "book_id,title,author,genre,available_copies,total_copies\n" +
			"B1,The Pragmatic Programmer,Hunt,Technology,2,5\n" +
			"B2,Dune,Herbert,Science Fiction,0,3\n"

		books, err := ParseBooks(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "B1", books[0].ID)
		assert.Equal(t, "The Pragmatic Programmer", books[0].Title)
		assert.Equal(t, 2, books[0].AvailableCopies)
		assert.Equal(t, 5, books[0].TotalCopies)
		assert.Equal(t, "Science Fiction", books[1].Genre)
	})

	t.Run("Empty Numeric Cells Read As Zero", func(t *testing.T) {
		input := "book_id,title,author,genre,available_copies,total_copies\n" +
			"B1,Dune,Herbert,Sci-Fi,,\n"

		books, err := ParseBooks(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, 0, books[0].AvailableCopies)
		assert.Equal(t, 0, books[0].TotalCopies)
	})

	t.Run("Non-Numeric Copy Count", func(t *testing.T) {
		input := "book_id,title,author,genre,available_copies,total_copies\n" +
			"B1,Dune,Herbert,Sci-Fi,many,3\n"

		_, err := ParseBooks(strings.NewReader(input))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "books", parseErr.Source)
		assert.Equal(t, 2, parseErr.Line)
	})

	t.Run("Empty Input", func(t *testing.T) {
		_, err := ParseBooks(strings.NewReader(""))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Error(), "header")
	})

	t.Run("Missing Required Column", func(t *testing.T) {
		input := "id,title,author\nB1,Dune,Herbert\n"

		_, err := ParseBooks(strings.NewReader(input))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Error(), "book_id")
	})

	t.Run("Cells Are Trimmed", func(t *testing.T) {
		input := "book_id,title,author,genre,available_copies,total_copies\n" +
			"B1, Dune , Herbert ,Sci-Fi, 1 , 2 \n"

		books, err := ParseBooks(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, 1, books[0].AvailableCopies)
	})
}

func TestParseUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		input := "user_id,name,email,phone\n" +
			"U1,Alice,alice@example.com,555-0101\n" +
			"U2,Bob,,\n"

		users, err := ParseUsers(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Alice", users[0].Name)
		assert.Empty(t, users[1].Email)
	})

	t.Run("Short Row Yields Absent Fields", func(t *testing.T) {
		input := "user_id,name,email,phone\nU1,Alice\n"

		users, err := ParseUsers(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, "Alice", users[0].Name)
		assert.Empty(t, users[0].Email)
		assert.Empty(t, users[0].Phone)
	})
}

func TestParseTransactions(t *testing.T) {
	header := "transaction_id,book_id,user_id,issue_date,due_date,return_date,fine\n"

	t.Run("Open And Returned Loans", func(t *testing.T) {
		input := header +
			"T1,B1,U1,01-06-2024,15-06-2024,,20\n" +
			"T2,B2,U2,02-06-2024,16-06-2024,10-06-2024,0\n"

		txs, err := ParseTransactions(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, txs, 2)

		assert.Nil(t, txs[0].ReturnDate)
		assert.True(t, txs[0].Open())
		assert.True(t, txs[0].Overdue())
		assert.Equal(t, 20.0, txs[0].Fine)
		assert.Equal(t, "01-06-2024", txs[0].IssueDate.String())

		require.NotNil(t, txs[1].ReturnDate)
		assert.Equal(t, "10-06-2024", txs[1].ReturnDate.String())
		assert.False(t, txs[1].Open())
		assert.False(t, txs[1].Overdue())
	})

	t.Run("Short Row Means Open Loan", func(t *testing.T) {
		input := header + "T1,B1,U1,01-06-2024,15-06-2024\n"

		txs, err := ParseTransactions(strings.NewReader(input))

		require.NoError(t, err)
		assert.Nil(t, txs[0].ReturnDate)
		assert.Equal(t, 0.0, txs[0].Fine)
	})

	t.Run("Missing Issue Date", func(t *testing.T) {
		input := header + "T1,B1,U1,,15-06-2024,,0\n"

		_, err := ParseTransactions(strings.NewReader(input))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Error(), "issue_date")
	})

	t.Run("Malformed Date", func(t *testing.T) {
		input := header + "T1,B1,U1,2024-06-01,15-06-2024,,0\n"

		_, err := ParseTransactions(strings.NewReader(input))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 2, parseErr.Line)
	})

	t.Run("Malformed Fine", func(t *testing.T) {
		input := header + "T1,B1,U1,01-06-2024,15-06-2024,,lots\n"

		_, err := ParseTransactions(strings.NewReader(input))

		assert.True(t, errors.As(err, new(*ParseError)))
	})
}
