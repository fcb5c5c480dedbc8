package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/ctxutil"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestAttachTraceContextEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	var seen string
	var td *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = c.GetString(ContextKeyRequestID)
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "req-123" || rec.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rec.Header().Get("X-Request-Id"))
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace id header missing")
	}
	if td == nil || td.RequestID != "req-123" || td.TraceID != rec.Header().Get("X-Trace-Id") {
		t.Fatalf("trace data not on request context: %+v", td)
	}
}

func TestMetricsMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics(time.Second)
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))

	var sb strings.Builder
	if err := m.WritePrometheus(&sb); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	want := `agrovet_api_requests_total{method="GET",route="/api/users/:id",status="404"} 1.000000`
	if !strings.Contains(sb.String(), want) {
		t.Fatalf("missing %q in\n%s", want, sb.String())
	}
}
