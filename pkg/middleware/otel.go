package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "linkroute"

// OTelConfig configures the OpenTelemetry filter.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "linkroute").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// IncludeExtras adds the App Link extras as span attributes.
	// Extras may carry user data, so this is disabled by default.
	IncludeExtras bool

	// Filter determines which requests to trace. If nil, all are traced.
	Filter func(req *applink.Request) bool

	// AttributeExtractor adds custom attributes for each traced request.
	AttributeExtractor func(req *applink.Request) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry filter.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeExtras enables recording App Link extras on spans.
func WithIncludeExtras(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeExtras = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(req *applink.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(req *applink.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates a filter that traces every dispatched request.
//
// The filter:
//   - Starts a span named "linkroute <scheme>" from the request context
//   - Records scheme, path, request ID and response status
//   - Marks the span as an error for any status other than StatusOK
//   - Passes the span context to the handler via req.Context()
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure it in main() before handling requests:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Filter {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return router.FilterFunc(func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *applink.Request) router.Response {
			if config.Filter != nil && !config.Filter(req) {
				return next.Process(req)
			}

			attrs := []attribute.KeyValue{
				attribute.String("linkroute.scheme", req.Scheme),
				attribute.String("linkroute.path", req.Path),
				attribute.String("linkroute.request_id", req.ID),
			}
			if config.IncludeExtras {
				for k, v := range req.Extras {
					attrs = append(attrs, attribute.String("linkroute.extras."+k, fmt.Sprint(v)))
				}
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(req)...)
			}

			ctx, span := tracer.Start(
				req.Context(),
				spanName(req),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			resp := next.Process(req.WithContext(ctx))

			span.SetAttributes(attribute.String("linkroute.status", resp.Status.String()))
			if resp.Status != router.StatusOK {
				span.SetStatus(codes.Error, resp.Status.String())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return resp
		})
	})
}

// SpanFromRequest returns the span started for req, or a non-recording
// span when the request was not traced.
func SpanFromRequest(req *applink.Request) trace.Span {
	return trace.SpanFromContext(req.Context())
}

// TraceContext returns the request context for propagation to external
// calls made by a handler.
//
//	httpReq, _ := http.NewRequestWithContext(middleware.TraceContext(req), "GET", url, nil)
func TraceContext(req *applink.Request) context.Context {
	return req.Context()
}

func spanName(req *applink.Request) string {
	return "linkroute " + schemeLabel(req.Scheme)
}
