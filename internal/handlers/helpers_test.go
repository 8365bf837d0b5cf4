package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/logger"
	"fintrack/internal/validator"
)

// --- mock audit service ---

type auditCall struct {
	action       string
	resourceType string
	resourceID   uint
}

type mockAuditService struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *mockAuditService) Log(action, resourceType string, resourceID uint, _ string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{action: action, resourceType: resourceType, resourceID: resourceID})
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.action)
	}
	return out
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"date_only", "2024-02-29", "2024-02-29", false},
		{"rfc3339_utc", "2025-11-05T18:30:00Z", "2025-11-05", false},
		{"rfc3339_offset_keeps_local_day", "2025-11-05T23:30:00-05:00", "2025-11-05", false},
		{"padded", " 2025-01-01 ", "2025-01-01", false},
		{"not_a_date", "yesterday", "", true},
		{"invalid_day", "2025-02-29", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlexibleTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("expected midnight, got %v", got)
			}
		})
	}
}
