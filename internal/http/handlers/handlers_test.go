package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEnv(t *testing.T) (*gin.Engine, *Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "tracker.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	h := &Handler{Store: st, Validator: validator.New(), Logger: zerolog.Nop()}

	r := gin.New()
	r.POST("/api/login", h.Login)
	api := r.Group("/api")
	api.Use(middleware.Session(st))
	{
		api.GET("/visits", h.VisitsList)
		api.POST("/visits", h.VisitCreate)
		api.GET("/reports/summary", h.ReportSummary)
		api.GET("/reports/performance", h.ReportPerformance)
		api.GET("/export/visits.csv", h.ExportVisitsCSV)
	}
	return r, h, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginBootstrapAdmin(t *testing.T) {
	r, _, st := newTestEnv(t)
	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "admin", "password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var u models.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !u.IsAdmin || u.ID != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if st.Session() == nil {
		t.Fatalf("session marker must be persisted")
	}
}

func TestLoginFailure(t *testing.T) {
	r, _, _ := newTestEnv(t)
	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": "admin", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestVisitsRequireSession(t *testing.T) {
	r, _, _ := newTestEnv(t)
	w := doJSON(t, r, http.MethodGet, "/api/visits", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestVisitCreateAndSummary(t *testing.T) {
	r, _, st := newTestEnv(t)
	ctx := context.Background()
	if err := st.SetSession(ctx, models.User{ID: "admin", Username: "관리자", IsAdmin: true}); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if err := st.AddEmployee(ctx, models.Employee{ID: "EZ", Name: "테스터", Password: "pw"}); err != nil {
		t.Fatalf("add employee: %v", err)
	}

	start := time.Now().Add(-time.Hour)
	w := doJSON(t, r, http.MethodPost, "/api/visits", gin.H{
		"hospitalName":   "연세 정형외과",
		"hospitalType":   "new",
		"visitStartTime": start.Format(time.RFC3339),
		"visitEndTime":   start.Add(time.Hour).Format(time.RFC3339),
		"contractStatus": "completed",
		"contractAmount": 1000000,
		"location":       "서울시 강남구",
		"employeeId":     "EZ",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Visit
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Latitude != models.DefaultLatitude || created.Longitude != models.DefaultLongitude {
		t.Fatalf("expected default coordinates, got %f,%f", created.Latitude, created.Longitude)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports/summary?employee_id=EZ&period=year", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summary map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary["visitCount"].(float64) != 1 || summary["completedCount"].(float64) != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}
	if summary["totalAmount"].(float64) != 1000000 {
		t.Fatalf("unexpected amount: %v", summary["totalAmount"])
	}
	if summary["conversionRateDisplay"].(string) != "100.0%" {
		t.Fatalf("unexpected display rate: %v", summary["conversionRateDisplay"])
	}
}

func TestNonAdminPinnedToOwnVisits(t *testing.T) {
	r, _, st := newTestEnv(t)
	ctx := context.Background()
	if err := st.AddVisit(ctx, models.Visit{ID: "VA", EmployeeID: "user", ContractStatus: models.ContractNone, VisitStartTime: time.Now()}); err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if err := st.SetSession(ctx, models.User{ID: "nobody", Username: "외부인"}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	// The employee_id filter of another user must be overridden.
	w := doJSON(t, r, http.MethodGet, "/api/visits?employee_id=user", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Items []models.Visit `json:"items"`
		Total int            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, v := range resp.Items {
		if v.EmployeeID != "nobody" {
			t.Fatalf("non-admin must only see own visits, got %+v", v)
		}
	}
}

func TestExportVisitsCSVEndpoint(t *testing.T) {
	r, _, st := newTestEnv(t)
	if err := st.SetSession(context.Background(), models.User{ID: "admin", IsAdmin: true}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/export/visits.csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("CSV body must start with a BOM")
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Fatalf("expected attachment disposition")
	}
}

func TestReportPerformanceGroupByRegion(t *testing.T) {
	r, _, st := newTestEnv(t)
	ctx := context.Background()
	if err := st.SetSession(ctx, models.User{ID: "admin", IsAdmin: true}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/reports/performance?group_by=region&sort=visits&limit=3&period=year", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows) > 3 {
		t.Fatalf("expected 1..3 region rows from the seed dataset, got %d", len(resp.Rows))
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports/performance?group_by=invalid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown group_by, got %d", w.Code)
	}
}
