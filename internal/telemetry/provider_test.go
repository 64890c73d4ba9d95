package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestWithHTTPRoute(t *testing.T) {
	t.Run("adds the matched pattern to the span", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		defer func() { _ = tp.Shutdown(context.Background()) }()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /orders/{id}", WithHTTPRoute(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		ctx, span := tp.Tracer("test").Start(context.Background(), "request")
		req := httptest.NewRequest(http.MethodGet, "/orders/ORD-1", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		span.End()

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}

		spans := recorder.Ended()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		var found bool
		for _, attr := range spans[0].Attributes() {
			if attr.Key == semconv.HTTPRouteKey && attr.Value.AsString() == "GET /orders/{id}" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected http.route attribute, got %v", spans[0].Attributes())
		}
	})
}
