package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(categoryID uint, amount decimal.Decimal, description *string, date time.Time) (*models.Transaction, error)
	getTransactionsFn    func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn func(transactionID uint) (*models.Transaction, error)
	updateTransactionFn  func(transactionID uint, fields services.TransactionUpdateFields) (*models.Transaction, error)
	deleteTransactionFn  func(transactionID uint) error
}

func (m *mockTransactionService) CreateTransaction(categoryID uint, amount decimal.Decimal, description *string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(categoryID, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(transactionID uint, fields services.TransactionUpdateFields) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(transactionID, fields)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(transactionID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(transactionID)
	}
	return nil
}

func (m *mockTransactionService) FindInDateRange(_, _ time.Time) ([]models.Transaction, error) {
	return nil, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with signed amount", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotDate time.Time
		txSvc := &mockTransactionService{
			createTransactionFn: func(categoryID uint, amount decimal.Decimal, desc *string, date time.Time) (*models.Transaction, error) {
				gotAmount, gotDate = amount, date
				return &models.Transaction{
					Base:        models.Base{ID: 9},
					CategoryID:  categoryID,
					Amount:      amount.Neg(),
					Description: desc,
					Date:        date,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"date":"2025-11-05","amount":"42.50","category_id":3,"description":"Market"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("expected amount 42.5 passed through, got %s", gotAmount)
		}
		if !gotDate.Equal(time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", gotDate)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["amount"] != "-42.5" {
			t.Errorf("expected amount as decimal string -42.5, got %v", tx["amount"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "CREATE_TRANSACTION" {
			t.Errorf("expected CREATE_TRANSACTION audit, got %v", got)
		}
	})

	t.Run("accepts numeric amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"date":"2025-11-05","amount":12,"category_id":3}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"date":"2025-11-05","category_id":3}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"date":"05/11/2025","amount":"1","category_id":3}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(uint, decimal.Decimal, *string, time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"date":"2025-11-05","amount":"1","category_id":99}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		var gotPage pagination.PageRequest
		txSvc := &mockTransactionService{
			getTransactionsFn: func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotPage, gotFilter = page, filter
				resp := pagination.NewPageResponse([]models.Transaction{}, page, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?from_date=2025-11-01&to_date=2025-11-30&category_id=4&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("unexpected page %+v", gotPage)
		}
		if gotFilter.FromDate == nil || gotFilter.FromDate.Day() != 1 {
			t.Errorf("unexpected from_date %v", gotFilter.FromDate)
		}
		if gotFilter.ToDate == nil || gotFilter.ToDate.Day() != 30 {
			t.Errorf("unexpected to_date %v", gotFilter.ToDate)
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 4 {
			t.Errorf("unexpected category filter %v", gotFilter.CategoryID)
		}
	})

	t.Run("returns 400 on bad from_date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?from_date=soon", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	txSvc := &mockTransactionService{
		getTransactionByIDFn: func(uint) (*models.Transaction, error) {
			return nil, apperrors.ErrTransactionNotFound
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/transactions/77", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("maps provided fields", func(t *testing.T) {
		var got services.TransactionUpdateFields
		txSvc := &mockTransactionService{
			updateTransactionFn: func(id uint, fields services.TransactionUpdateFields) (*models.Transaction, error) {
				got = fields
				return &models.Transaction{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/8", `{"category_id":5,"date":"2025-12-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.CategoryID == nil || *got.CategoryID != 5 {
			t.Errorf("expected category 5, got %v", got.CategoryID)
		}
		if got.Amount != nil {
			t.Errorf("expected amount untouched, got %v", got.Amount)
		}
		if got.Date == nil || got.Date.Month() != time.December {
			t.Errorf("unexpected date %v", got.Date)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/8", `{"date":"tomorrow"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted uint
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(id uint) error {
				deleted = id
				return nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/12", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != 12 {
			t.Errorf("expected id 12, got %d", deleted)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(uint) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/12", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
