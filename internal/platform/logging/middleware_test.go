package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "khatira-test")
	t.Cleanup(func() { Logger = Logger.Output(&bytes.Buffer{}) })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/api/khawatir/:id", func(c *gin.Context) {
		c.String(http.StatusNotFound, "missing")
	})

	req := httptest.NewRequest("GET", "/api/khawatir/42", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["level"] != "warn" {
		t.Errorf("expected warn level for 404, got %v", entry["level"])
	}
	if entry["path"] != "/api/khawatir/:id" {
		t.Errorf("expected route template in path, got %v", entry["path"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v", entry["status"])
	}
	if entry["service"] != "khatira-test" {
		t.Errorf("expected service field, got %v", entry["service"])
	}
	if ipHash, _ := entry["ip_hash"].(string); ipHash == "" || ipHash == "203.0.113.7" {
		t.Errorf("expected hashed ip, got %v", entry["ip_hash"])
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "not-a-level", "svc")
	t.Cleanup(func() { Logger = Logger.Output(&bytes.Buffer{}) })

	Logger.Debug().Msg("hidden")
	Logger.Info().Msg("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("debug output should be filtered at info level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Error("info output should be written")
	}
}
