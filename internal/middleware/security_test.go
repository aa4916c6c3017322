package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	expected := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "DENY",
		"Referrer-Policy":              "no-referrer",
		"Content-Security-Policy":      "default-src 'none'; frame-ancestors 'none'",
		"Cross-Origin-Resource-Policy": "same-site",
		"Cache-Control":                "no-store",
	}

	for header, want := range expected {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestMaxBodySize(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodySize(8))
	r.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":"much too long"}`)))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	var seen string

	r := gin.New()
	r.Use(RequestID(log))
	r.GET("/test", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("generated id %q is not a UUID", seen)
	}

	if w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("header = %q, context = %q", w.Header().Get(RequestIDHeader), seen)
	}

	clientID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(RequestIDHeader, clientID)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen != clientID {
		t.Errorf("UUID client id not adopted: got %q want %q", seen, clientID)
	}

	req = httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(RequestIDHeader, "abc; drop table")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "abc; drop table" {
		t.Error("non-UUID client id was adopted")
	}
}
