package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mediassist/internal/metrics"
	"mediassist/internal/models"
	"mediassist/internal/utils"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "rid": c.GetString("requestID")})
	})
	return r
}

func get(r http.Handler, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(AuthMiddleware("s3cret"))

	if w := get(r); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", w.Code)
	}
	if w := get(r, "Authorization", "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a non-bearer header, got %d", w.Code)
	}
	if w := get(r, "Authorization", "Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bad token, got %d", w.Code)
	}

	token, err := utils.GenerateToken(&models.User{ID: 5}, "s3cret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := get(r, "Authorization", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":5`) {
		t.Errorf("expected the user id in context, got %s", w.Body.String())
	}
}

func TestRequestIDAssigned(t *testing.T) {
	r := newEngine(RequestID(), Logger(zap.NewNop()))

	w := get(r)
	rid := w.Header().Get("X-Request-ID")
	if rid == "" {
		t.Fatal("expected a request id to be assigned")
	}
	if !strings.Contains(w.Body.String(), rid) {
		t.Errorf("expected the request id in context, got %s", w.Body.String())
	}

	if got := get(r, "X-Request-ID", "fixed").Header().Get("X-Request-ID"); got != "fixed" {
		t.Errorf("expected fixed, got %q", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewCollector("mw")
	r := newEngine(Metrics(m))
	get(r)
	get(r)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/who", "200")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
}

func TestLoggerTagsAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newEngine(Logger(zap.New(core)), AuthMiddleware("s3cret"))

	token, err := utils.GenerateToken(&models.User{ID: 5}, "s3cret", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	get(r, "Authorization", "Bearer "+token)
	get(r)

	entries := logs.FilterMessage("request").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["user_id"]; got != int64(5) {
		t.Errorf("expected user_id 5, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["user_id"]; ok {
		t.Error("expected no user_id for an anonymous request")
	}
}
