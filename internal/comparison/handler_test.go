package comparison

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
	"github.com/CONFENGE/etp-express-sub002/internal/category"

	"github.com/gin-gonic/gin"
)

func newTestHandlerRouter(t *testing.T) (*gin.Engine, *category.Category) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := category.NewInMemoryCatalog()
	cat := catalog.Add(&category.Category{Code: "CATMAT-123", Name: "Notebook", Active: true})

	repo := benchmark.NewInMemoryRepository()
	if err := repo.Upsert(context.Background(), nationalBenchmark(cat.ID)); err != nil {
		t.Fatal(err)
	}

	handler := NewHandler(NewEngine(catalog, repo))

	r := gin.New()
	r.GET("/compare", handler.Compare)

	return r, cat
}

func doCompare(r *gin.Engine, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/compare?"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompareEndpoint(t *testing.T) {
	r, cat := newTestHandlerRouter(t)

	w := doCompare(r, "price=3500&categoryId="+cat.ID+"&region=BR")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, field := range []string{`"deviation_pct"`, `"percentile_estimate"`, `"risk_tier"`, `"suggestion"`} {
		if !strings.Contains(body, field) {
			t.Errorf("response missing %s: %s", field, body)
		}
	}
}

func TestCompareEndpointValidation(t *testing.T) {
	r, cat := newTestHandlerRouter(t)

	cases := []struct {
		name  string
		query string
	}{
		{"missing price", "categoryId=" + cat.ID + "&region=BR"},
		{"negative price", "price=-10&categoryId=" + cat.ID + "&region=BR"},
		{"missing region", "price=100&categoryId=" + cat.ID},
		{"region too long", "price=100&categoryId=" + cat.ID + "&region=BRA"},
		{"unknown region", "price=100&categoryId=" + cat.ID + "&region=XX"},
		{"bad org size", "price=100&categoryId=" + cat.ID + "&region=BR&orgSize=HUGE"},
		{"missing category", "price=100&region=BR"},
	}

	for _, tc := range cases {
		if w := doCompare(r, tc.query); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestCompareEndpointNotFound(t *testing.T) {
	r, _ := newTestHandlerRouter(t)

	w := doCompare(r, "price=100&categoryCode=UNKNOWN&region=BR")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCompareEndpointByCode(t *testing.T) {
	r, _ := newTestHandlerRouter(t)

	w := doCompare(r, "price=3500&categoryCode=CATMAT-123&region=SP")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via national fallback, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"region":"BR"`) {
		t.Errorf("expected national benchmark in response: %s", w.Body.String())
	}
}
