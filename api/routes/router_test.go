package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	accountsvc "github.com/namas-shop/namas-backend/internal/account"
	"github.com/namas-shop/namas-backend/pkg/auth"
	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/logger"
)

type stubChecker struct {
	live map[string]bool
}

func (c *stubChecker) HasSession(_ context.Context, sessionID string) (bool, error) {
	return c.live[sessionID], nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type noopAccountService struct{}

func (noopAccountService) Register(context.Context, accountsvc.RegisterInput) (*accountsvc.Session, error) {
	panic("unimplemented")
}

func (noopAccountService) Login(context.Context, accountsvc.LoginInput) (*accountsvc.Session, error) {
	panic("unimplemented")
}

func (noopAccountService) Logout(context.Context, string) error { return nil }

func (noopAccountService) CurrentUser(_ context.Context, userID uuid.UUID) (*accountsvc.UserDTO, error) {
	return &accountsvc.UserDTO{ID: userID.String(), Email: "me@example.com"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "namas-api",
			ExpirationMinutes: 60,
			CookieName:        "namas_session",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(t *testing.T, checker *stubChecker) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{
		ServiceName: "test",
		Level:       logger.ParseLevel("debug"),
		Output:      io.Discard,
	})
	return NewRouter(testConfig(), logg, stubPinger{}, nil, checker,
		noopAccountService{}, nil, nil, nil, nil, nil)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestWrongMethodOnKnownPath(t *testing.T) {
	router := newTestRouter(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodDelete, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false || body["message"] != "Invalid request method." {
		t.Fatalf("body = %v", body)
	}
}

func TestUnknownPath(t *testing.T) {
	router := newTestRouter(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/nothing-here", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decode(t, rec)
	if body["message"] != "Resource not found." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestProtectedRouteWithoutCookie(t *testing.T) {
	router := newTestRouter(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/account/user", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := decode(t, rec)
	if body["message"] != "User is not authenticated." {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestProtectedRouteWithLiveSession(t *testing.T) {
	cfg := testConfig()
	sessionID := "sess-live"
	checker := &stubChecker{live: map[string]bool{sessionID: true}}
	router := newTestRouter(t, checker)

	token, err := auth.MintAccessToken(cfg.JWT, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "me@example.com",
		JTI:    sessionID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/account/user", nil)
	req.AddCookie(&http.Cookie{Name: "namas_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestProtectedRouteWithRevokedSession(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, &stubChecker{})

	token, err := auth.MintAccessToken(cfg.JWT, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "me@example.com",
		JTI:    "sess-gone",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/account/user", nil)
	req.AddCookie(&http.Cookie{Name: "namas_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
