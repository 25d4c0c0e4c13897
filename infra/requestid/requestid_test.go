package requestid

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateIsTraceIdShaped(t *testing.T) {
	id := Generate()
	if len(id) != 32 {
		t.Fatalf("expected 32 chars, got %d (%s)", len(id), id)
	}
	if _, err := hex.DecodeString(id); err != nil {
		t.Fatalf("expected hex, got %s: %v", id, err)
	}
	if Generate() == id {
		t.Fatalf("expected distinct ids")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != "" {
		t.Fatalf("expected empty id on a bare context")
	}
	ctx := NewContext(context.Background(), "abc")
	if FromContext(ctx) != "abc" {
		t.Fatalf("expected abc, got %q", FromContext(ctx))
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "caller-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if seen != "caller-id" || w.Header().Get(Header) != "caller-id" {
		t.Fatalf("expected caller id to be kept, got ctx=%q header=%q", seen, w.Header().Get(Header))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(seen) != 32 || w.Header().Get(Header) != seen {
		t.Fatalf("expected a generated id echoed back, got ctx=%q header=%q", seen, w.Header().Get(Header))
	}
}
