// Package middleware provides router filters for production deployments.
//
// This package includes:
//   - Prometheus metrics
//   - OpenTelemetry tracing
//   - Token-bucket rate limiting
//
// # Prometheus Metrics
//
// The Prometheus filter records every dispatched request:
//   - linkroute_requests_total: Requests by scheme and status
//   - linkroute_request_duration_seconds: Handler duration by scheme
//
// Lookups that match no route never reach a filter. NewPrometheus also
// returns a Metrics recorder for those:
//   - linkroute_misses_total: Unmatched requests by scheme
//   - linkroute_routes: Registered routes
//
// Both share the registry passed with WithRegistry:
//
//	filter, rec := middleware.NewPrometheus(middleware.WithRegistry(reg))
//	r := router.New(router.WithFilters(filter))
//
// # OpenTelemetry
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(req *applink.Request) bool {
//	        return req.Scheme != "debug"
//	    }),
//	))
//
// Handlers receive the span context through req.Context() and can pass it
// on to outgoing calls:
//
//	func (h *Profile) Process(req *applink.Request) router.Response {
//	    row := db.QueryRowContext(req.Context(), "SELECT ...")
//	    ...
//	}
//
// # Rate Limiting
//
//	r.Use(middleware.RateLimit(rate.Limit(50), 100))
package middleware
