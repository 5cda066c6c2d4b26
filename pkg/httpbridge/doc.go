// Package httpbridge exposes a router over HTTP.
//
// Endpoints:
//
//	GET  /resolve?url=app://users/42   match a URL without dispatching it
//	POST /open {"url": "app://users/42"} dispatch a URL to its handler
//	GET  /routes                        list registered routes
//	GET  /healthz                       liveness probe
//	GET  /metrics                       Prometheus metrics, when a gatherer is set
//
// Usage:
//
//	srv := httpbridge.New(r, httpbridge.WithGatherer(prometheus.DefaultGatherer))
//	err := srv.ListenAndServe(ctx, ":8080")
package httpbridge
