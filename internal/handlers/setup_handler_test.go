package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

type mockSetupService struct {
	createDefaultCategoriesFn func() (*services.SetupResult, error)
}

func (m *mockSetupService) CreateDefaultCategories() (*services.SetupResult, error) {
	if m.createDefaultCategoriesFn != nil {
		return m.createDefaultCategoriesFn()
	}
	return &services.SetupResult{Created: []string{}, Skipped: []string{}}, nil
}

func setupSetupRouter(handler *SetupHandler) *gin.Engine {
	r := gin.New()
	r.POST("/setup/default-categories", handler.CreateDefaultCategories)
	return r
}

func TestSetupHandler_CreateDefaultCategories(t *testing.T) {
	t.Run("returns created and skipped", func(t *testing.T) {
		svc := &mockSetupService{
			createDefaultCategoriesFn: func() (*services.SetupResult, error) {
				return &services.SetupResult{Created: []string{"Salary"}, Skipped: []string{"Rent"}}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupSetupRouter(NewSetupHandler(svc, audit))

		rec := doRequest(r, "POST", "/setup/default-categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if len(result["created"].([]interface{})) != 1 || len(result["skipped"].([]interface{})) != 1 {
			t.Errorf("unexpected result %v", result)
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "SEED_CATEGORIES" {
			t.Errorf("expected SEED_CATEGORIES audit, got %v", got)
		}
	})

	t.Run("no audit when nothing created", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupSetupRouter(NewSetupHandler(&mockSetupService{}, audit))

		doRequest(r, "POST", "/setup/default-categories", "")

		if len(audit.actions()) != 0 {
			t.Errorf("expected no audit, got %v", audit.actions())
		}
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		svc := &mockSetupService{
			createDefaultCategoriesFn: func() (*services.SetupResult, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down"))
			},
		}
		r := setupSetupRouter(NewSetupHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/setup/default-categories", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
