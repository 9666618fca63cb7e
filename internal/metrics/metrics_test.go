package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAsynqMetricsMiddlewareCountsResults(t *testing.T) {
	failing := AsynqMetricsMiddleware()(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
		return errors.New("boom")
	}))
	task := asynq.NewTask("test:metrics", nil)

	before := testutil.ToFloat64(taskProcessedTotal.WithLabelValues("test:metrics", "error"))
	if err := failing.ProcessTask(context.Background(), task); err == nil {
		t.Fatalf("expected handler error to pass through")
	}
	after := testutil.ToFloat64(taskProcessedTotal.WithLabelValues("test:metrics", "error"))
	if after-before != 1 {
		t.Fatalf("expected one failed task, got %v", after-before)
	}
	if got := testutil.ToFloat64(taskInProgress.WithLabelValues("test:metrics")); got != 0 {
		t.Fatalf("in-progress gauge not restored: %v", got)
	}
}

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/v1/editor/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/editor/:id", "200"))
	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/editor/"+id, nil))
	}
	after := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/editor/:id", "200"))
	if after-before != 2 {
		t.Fatalf("expected both requests under one label set, got %v", after-before)
	}
}
