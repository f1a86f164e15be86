package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CONFENGE/etp-express-sub002/internal/category"
	"github.com/CONFENGE/etp-express-sub002/internal/prices"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *category.Category, *InMemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := category.NewInMemoryCatalog()
	cat := catalog.Add(&category.Category{Code: "CATMAT-123", Name: "Notebook", Active: true})
	repo := NewInMemoryRepository()
	guard := NewGuard()
	aggregator := NewAggregator(catalog, prices.NewInMemoryStore(), repo, guard)
	handler := NewHandler(NewService(catalog, repo), aggregator)

	r := gin.New()
	r.GET("/benchmarks", handler.List)
	r.GET("/benchmarks/stats", handler.GetSummary)
	r.GET("/benchmarks/:category", handler.GetByCategory)
	r.GET("/benchmarks/:category/regional", handler.GetRegionalBreakdown)
	r.POST("/admin/benchmarks/recalculate", handler.Recalculate)

	return r, cat, repo
}

func TestListRejectsInvalidRegion(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/benchmarks?region=XX", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestListRejectsOutOfRangeLimit(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, limit := range []string{"-1", "101"} {
		req := httptest.NewRequest(http.MethodGet, "/benchmarks?limit="+limit, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", limit, w.Code)
		}
	}
}

func TestListReturnsEnvelope(t *testing.T) {
	r, cat, repo := newTestRouter(t)

	if err := repo.Upsert(context.Background(), &Benchmark{
		CategoryID: cat.ID, Region: "SP", OrgSize: OrgSizeAll, SampleCount: 9,
	}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/benchmarks?region=SP", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, field := range []string{`"data"`, `"total"`, `"page"`, `"limit"`, `"total_pages"`} {
		if !strings.Contains(body, field) {
			t.Errorf("envelope missing %s: %s", field, body)
		}
	}
}

func TestGetByCategoryNotFoundStatus(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/benchmarks/UNKNOWN", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRecalculateAcceptsEmptyBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/benchmarks/recalculate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"benchmarksUpdated":0`) {
		t.Errorf("expected zero updates, got %s", w.Body.String())
	}
}

func TestRecalculateRejectsInvalidRegion(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(
		http.MethodPost,
		"/admin/benchmarks/recalculate",
		strings.NewReader(`{"region":"ZZ"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
