package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/namas-shop/namas-backend/api/middleware"
	"github.com/namas-shop/namas-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "test",
		Level:       logger.ParseLevel("debug"),
		Output:      io.Discard,
	})
}

func authedRequest(method, target, body, userID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}
