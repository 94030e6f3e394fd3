package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupIngestRouter(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ingest", IngestAuthMiddleware(apiKey), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestIngestAuthMiddleware(t *testing.T) {
	t.Run("valid_key", func(t *testing.T) {
		r := setupIngestRouter("secret-key")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		req.Header.Set("X-API-Key", "secret-key")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("wrong_key", func(t *testing.T) {
		r := setupIngestRouter("secret-key")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		req.Header.Set("X-API-Key", "wrong")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		r := setupIngestRouter("secret-key")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		r := setupIngestRouter("")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		req.Header.Set("X-API-Key", "anything")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", w.Code)
		}
	})
}
