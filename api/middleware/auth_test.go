package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/kingcapco/salesops-backend/pkg/auth"
	"github.com/kingcapco/salesops-backend/pkg/config"
)

var testJWTConfig = config.JWTConfig{Secret: "test-secret", Issuer: "kingcap-test"}

func mintTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now(), time.Hour, pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "sales@kingcapco.com",
	})
	if err != nil {
		t.Fatalf("MintAccessToken failed: %v", err)
	}
	return token
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	var gotUserID, gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotEmail = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID))
	rec := httptest.NewRecorder()

	Auth(testJWTConfig, nil)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != userID.String() {
		t.Fatalf("user id = %q, want %q", gotUserID, userID)
	}
	if gotEmail != "sales@kingcapco.com" {
		t.Fatalf("email = %q", gotEmail)
	}
}

func TestAuth_Rejections(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})
	handler := Auth(testJWTConfig, nil)(next)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error.Code != "UNAUTHORIZED" {
				t.Fatalf("error code = %q", body.Error.Code)
			}
		})
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now().Add(-2*time.Hour), time.Hour, pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "sales@kingcapco.com",
	})
	if err != nil {
		t.Fatalf("MintAccessToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(testJWTConfig, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
