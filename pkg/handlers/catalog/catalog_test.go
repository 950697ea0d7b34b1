package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xd-kamlesh/digital-library-tracker/pkg/api"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/handlers/catalog"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/models"
	"github.com/xd-kamlesh/digital-library-tracker/pkg/storage/mocks"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestListBooks(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListBooks", mock.Anything).Return([]models.Book{
			{ID: "B1", Title: "Dune", Genre: "Fiction", AvailableCopies: 0, TotalCopies: 3},
			{ID: "B2", Title: "Sapiens", Genre: "History", AvailableCopies: 3, TotalCopies: 3},
		}, nil)

		h := catalog.NewCatalogHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		rr := httptest.NewRecorder()

		h.ListBooks(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var books []api.Book
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &books))
		require.Len(t, books, 2)
		assert.Equal(t, "Not Available", books[0].Status)
		assert.Equal(t, "Available", books[1].Status)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListBooks", mock.Anything).Return(nil, assert.AnError)

		h := catalog.NewCatalogHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		rr := httptest.NewRecorder()

		h.ListBooks(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestListUsers(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("ListUsers", mock.Anything).Return([]models.User{
		{ID: "U1", Name: "Alice", Email: "alice@example.com"},
		{ID: "U2", Name: "Bob"},
	}, nil)
	mockStorage.On("ListTransactions", mock.Anything).Return([]models.Transaction{
		{ID: "T1", UserID: "U1", Fine: 20},
		{ID: "T2", UserID: "U1", Fine: 5},
	}, nil)

	h := catalog.NewCatalogHandler(mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rr := httptest.NewRecorder()

	h.ListUsers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var users []api.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, 2, users[0].BorrowCount)
	assert.Equal(t, 25.0, users[0].TotalFines)
	assert.Equal(t, 0, users[1].BorrowCount)

	mockStorage.AssertExpectations(t)
}

func TestListTransactions(t *testing.T) {
	returned := date(t, "18-06-2024")
	mockStorage := new(mocks.Storage)
	mockStorage.On("ListBooks", mock.Anything).Return([]models.Book{
		{ID: "B1", Title: "Dune"},
	}, nil)
	mockStorage.On("ListUsers", mock.Anything).Return([]models.User{
		{ID: "U1", Name: "Alice"},
	}, nil)
	mockStorage.On("ListTransactions", mock.Anything).Return([]models.Transaction{
		{ID: "T1", BookID: "B1", UserID: "U1", IssueDate: date(t, "01-06-2024"), DueDate: date(t, "15-06-2024"), Fine: 20},
		{ID: "T2", BookID: "missing", UserID: "ghost", IssueDate: date(t, "02-06-2024"), DueDate: date(t, "16-06-2024"), ReturnDate: &returned},
	}, nil)

	h := catalog.NewCatalogHandler(mockStorage)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rr := httptest.NewRecorder()

	h.ListTransactions(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var txs []api.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txs))
	require.Len(t, txs, 2)

	assert.Equal(t, "Dune", txs[0].BookTitle)
	assert.Equal(t, "Alice", txs[0].UserName)
	assert.Equal(t, "Overdue", txs[0].Status)
	assert.Empty(t, txs[0].ReturnDate)

	assert.Equal(t, "N/A", txs[1].BookTitle)
	assert.Equal(t, "N/A", txs[1].UserName)
	assert.Equal(t, "Returned", txs[1].Status)
	assert.Equal(t, "18-06-2024", txs[1].ReturnDate)

	mockStorage.AssertExpectations(t)
}
