// Package observability logs and traces web requests.
package observability

import (
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/pawprint/internal/platform/requestctx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/pawprint/internal/services/web"

// recorder captures the status and size a handler writes.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *recorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// RequestLogger logs one line per request once the handler returns. HTMX
// fragment requests are marked so infinite-scroll traffic is easy to filter.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			logger.Printf(
				"http request method=%s path=%s status=%d bytes=%d latency=%s htmx=%t request_id=%s user_id=%s",
				r.Method,
				r.URL.Path,
				rec.code(),
				rec.bytes,
				time.Since(start).Round(time.Microsecond),
				httpx.IsHTMXRequest(r),
				orDash(httpx.RequestIDFromContext(r.Context())),
				orDash(requestctx.UserIDFromContext(r.Context())),
			)
		})
	}
}

// Trace opens a server span per request. Responses of 500 and above mark the
// span as failed.
func Trace() httpx.Middleware {
	tracer := otel.Tracer(instrumentationName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
					attribute.Bool("htmx", httpx.IsHTMXRequest(r)),
				),
			)
			defer span.End()
			if id := httpx.RequestIDFromContext(ctx); id != "" {
				span.SetAttributes(attribute.String("request.id", id))
			}
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))
			status := rec.code()
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
