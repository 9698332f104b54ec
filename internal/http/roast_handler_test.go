package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roastgram/internal/domain"
	"roastgram/internal/llm"
	"roastgram/internal/service"
)

type mockScraper struct {
	records []domain.RawScrapeRecord
	err     error
}

func (m *mockScraper) Scrape(_ context.Context, _ string) ([]domain.RawScrapeRecord, error) {
	return m.records, m.err
}

func newRoastRouter(scraper *mockScraper, generator *llm.MockGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewRoastService(logger, scraper, generator, 0)
	return NewRouter(logger, NewRoastHandler(logger, svc), NewProxyHandler(logger, nil))
}

func postRoast(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/roast", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRoastEndpoint_MissingUsername(t *testing.T) {
	router := newRoastRouter(&mockScraper{}, &llm.MockGenerator{})

	for _, body := range []string{`{}`, `{"username":""}`, `not json`} {
		rec := postRoast(t, router, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid error body: %v", err)
		}
		if resp["error"] != "Username dibutuhkan" {
			t.Fatalf("unexpected error message: %q", resp["error"])
		}
	}
}

func TestRoastEndpoint_NotFound(t *testing.T) {
	generator := &llm.MockGenerator{Response: "nunca"}
	router := newRoastRouter(&mockScraper{records: []domain.RawScrapeRecord{}}, generator)

	rec := postRoast(t, router, `{"username":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp["error"] != "Tidak ada data instagram yang ditemukan" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
	if generator.Calls != 0 {
		t.Fatalf("expected no generation call, got %d", generator.Calls)
	}
}

func TestRoastEndpoint_Success(t *testing.T) {
	scraper := &mockScraper{records: []domain.RawScrapeRecord{
		{"username": "alice", "followers": float64(1200)},
	}}
	router := newRoastRouter(scraper, &llm.MockGenerator{Response: "roast pedas"})

	rec := postRoast(t, router, `{"username":"alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.RoastResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Roast != "roast pedas" {
		t.Fatalf("unexpected roast: %q", resp.Roast)
	}
	if resp.Profile.Username != "alice" || resp.Profile.FollowersCount != 1200 {
		t.Fatalf("unexpected profile: %+v", resp.Profile)
	}
}

func TestRoastEndpoint_GenerationFailureStillSucceeds(t *testing.T) {
	scraper := &mockScraper{records: []domain.RawScrapeRecord{
		{"username": "alice"},
	}}
	router := newRoastRouter(scraper, &llm.MockGenerator{Err: errors.New("model down")})

	rec := postRoast(t, router, `{"username":"alice"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on degraded generation, got %d", rec.Code)
	}

	var resp domain.RoastResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Roast != service.FallbackRoast {
		t.Fatalf("expected fallback roast, got %q", resp.Roast)
	}
	if resp.Profile.Username != "alice" {
		t.Fatalf("expected populated profile, got %+v", resp.Profile)
	}
}

func TestRoastEndpoint_ScrapeFailure(t *testing.T) {
	router := newRoastRouter(&mockScraper{err: errors.New("apify down")}, &llm.MockGenerator{})

	rec := postRoast(t, router, `{"username":"alice"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected diagnostic error message")
	}
}
