package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

type mockSummaryService struct {
	getMonthSummaryFn func(year, month int) (*services.MonthSummary, error)
}

func (m *mockSummaryService) GetMonthSummary(year, month int) (*services.MonthSummary, error) {
	if m.getMonthSummaryFn != nil {
		return m.getMonthSummaryFn(year, month)
	}
	return &services.MonthSummary{Year: year, Month: month, Categories: []services.CategorySummary{}}, nil
}

var _ services.SummaryServicer = (*mockSummaryService)(nil)

func setupSummaryRouter(handler *SummaryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/summaries/month", handler.GetMonthSummary)
	return r
}

func TestSummaryHandler_GetMonthSummary(t *testing.T) {
	t.Run("returns report", func(t *testing.T) {
		svc := &mockSummaryService{
			getMonthSummaryFn: func(year, month int) (*services.MonthSummary, error) {
				return &services.MonthSummary{
					Year:     year,
					Month:    month,
					Income:   decimal.RequireFromString("1000"),
					Expenses: decimal.RequireFromString("-200"),
					Net:      decimal.RequireFromString("800"),
					Categories: []services.CategorySummary{{
						CategoryID: 2,
						Name:       "Groceries",
						Type:       models.CategoryTypeExpense,
						Spent:      decimal.RequireFromString("-200"),
						Budget:     decimal.RequireFromString("300"),
						Remaining:  decimal.RequireFromString("500"),
					}},
				}, nil
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc))

		rec := doRequest(r, "GET", "/summaries/month?year=2025&month=11", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["net"] != "800" || result["income"] != "1000" || result["expenses"] != "-200" {
			t.Errorf("unexpected totals %v", result)
		}
		rows := result["categories"].([]interface{})
		row := rows[0].(map[string]interface{})
		if row["remaining"] != "500" || row["category_id"] != float64(2) {
			t.Errorf("unexpected row %v", row)
		}
	})

	t.Run("empty categories encode as array", func(t *testing.T) {
		r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

		rec := doRequest(r, "GET", "/summaries/month?year=2025&month=1", "")

		if _, ok := parseJSON(t, rec)["categories"].([]interface{}); !ok {
			t.Errorf("expected categories array, got %s", rec.Body.String())
		}
	})

	t.Run("returns 400 on missing month", func(t *testing.T) {
		r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

		rec := doRequest(r, "GET", "/summaries/month?year=2025", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-numeric year", func(t *testing.T) {
		r := setupSummaryRouter(NewSummaryHandler(&mockSummaryService{}))

		rec := doRequest(r, "GET", "/summaries/month?year=abc&month=1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid period", func(t *testing.T) {
		svc := &mockSummaryService{
			getMonthSummaryFn: func(int, int) (*services.MonthSummary, error) {
				return nil, apperrors.ErrInvalidPeriod
			},
		}
		r := setupSummaryRouter(NewSummaryHandler(svc))

		rec := doRequest(r, "GET", "/summaries/month?year=2025&month=13", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PERIOD")
	})
}
