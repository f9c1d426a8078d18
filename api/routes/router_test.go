package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kingcapco/salesops-backend/internal/designquotes"
	"github.com/kingcapco/salesops-backend/internal/export"
	"github.com/kingcapco/salesops-backend/internal/pricing"
	pkgauth "github.com/kingcapco/salesops-backend/pkg/auth"
	"github.com/kingcapco/salesops-backend/pkg/config"
	"github.com/kingcapco/salesops-backend/pkg/db/models"
	pkgerrors "github.com/kingcapco/salesops-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubDesignService struct{}

func (stubDesignService) CreateDesign(ctx context.Context, createdBy uuid.UUID, input designquotes.CreateDesignInput) (*models.Design, error) {
	return &models.Design{ID: uuid.New(), Name: input.Name, CreatedByID: createdBy}, nil
}

func (stubDesignService) GetDesign(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	return &models.Design{ID: id, Name: "Fairway Rope Hat"}, nil
}

func (stubDesignService) ListDesigns(ctx context.Context, limit, offset int) ([]models.Design, error) {
	return nil, nil
}

func (stubDesignService) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubDesignService) SaveQuote(ctx context.Context, designID, createdBy uuid.UUID, input designquotes.QuoteInput) (*models.DesignQuote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "design not found")
}

func (stubDesignService) PatchQuote(ctx context.Context, designID uuid.UUID, patch designquotes.QuotePatch) (*models.DesignQuote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubDesignService) GetQuote(ctx context.Context, designID uuid.UUID) (*models.DesignQuote, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
}

func (stubDesignService) DeleteQuote(ctx context.Context, designID uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "kingcap-test"},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.Default())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	exporter, err := export.NewExporter(engine, nil, nil)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	return NewRouter(testConfig(), nil, stubPinger{}, nil, nil, nil, engine, stubDesignService{}, exporter)
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now(), time.Hour, pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "sales@kingcapco.com",
	})
	if err != nil {
		t.Fatalf("MintAccessToken failed: %v", err)
	}
	return "Bearer " + token
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200: %s", path, rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("X-KingCap-Env"); got != "test" {
			t.Fatalf("%s: env header = %q", path, got)
		}
	}
}

func TestRouter_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/quotes/options"},
		{http.MethodPost, "/api/v1/quotes/domestic"},
		{http.MethodGet, "/api/v1/designs/"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestRouter_QuoteFlow(t *testing.T) {
	router := newTestRouter(t)
	auth := bearer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/options", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("options: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/quotes/domestic", strings.NewReader(`{"style_number":"ST100","quantity":144}`))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("domestic: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/quotes/domestic/export", strings.NewReader(`{"style_number":"ST100","quantity":144}`))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != export.ContentTypeXLSX {
		t.Fatalf("export content type = %q", got)
	}
}

func TestRouter_DesignRoutes(t *testing.T) {
	router := newTestRouter(t)
	auth := bearer(t)
	designID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/designs/"+designID.String(), nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get design: status = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/designs/"+designID.String()+"/quote", nil)
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get quote: status = %d, want 404", rec.Code)
	}
}
