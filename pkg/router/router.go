package router

import (
	"log/slog"

	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
)

// Router registers routes and dispatches navigation URLs to their
// handlers. Routes and filters are expected to be registered before the
// router starts handling URLs.
type Router struct {
	table   RoutingTable
	filters []Filter
	logger  *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithTable sets the routing table. Default: NewTreeTable().
func WithTable(t RoutingTable) Option {
	return func(r *Router) {
		r.table = t
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithFilters registers filters, as Use does.
func WithFilters(filters ...Filter) Option {
	return func(r *Router) {
		r.filters = append(r.filters, filters...)
	}
}

// New creates a router.
func New(opts ...Option) *Router {
	r := &Router{}
	for _, opt := range opts {
		opt(r)
	}
	if r.table == nil {
		r.table = NewTreeTable()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "router")
	return r
}

// Table returns the routing table.
func (r *Router) Table() RoutingTable {
	return r.table
}

// Register adds a route in "scheme://path" or "path" form. It fails with
// R001 when the path after the scheme is empty and with R002 when handler
// is nil; the table is left untouched in both cases. Registering a route
// that already exists replaces its handler.
func (r *Router) Register(route string, handler Handler) error {
	scheme, _, path := SplitRoute(route)
	if len(path) == 0 {
		r.logger.Warn("route rejected", "route", route, "reason", "empty path")
		return errors.New("R001").WithDetail("route " + route)
	}
	if handler == nil {
		r.logger.Warn("route rejected", "route", route, "reason", "nil handler")
		return errors.New("R002").WithDetail("route " + route)
	}

	r.table.AddRoute(scheme, path, handler)
	r.logger.Debug("route registered", "scheme", scheme, "path", path)
	return nil
}

// AddRoute registers handler for route and reports whether the route was
// accepted.
//
// Supported formats:
//
//	app://users/:id   → scheme "app", path "users/:id"
//	/users/:id        → default scheme
//	app:///           → root of the "app" scheme
func (r *Router) AddRoute(route string, handler Handler) bool {
	return r.Register(route, handler) == nil
}

// RegisterFactory registers a route whose handler is built by factory for
// every request.
func (r *Router) RegisterFactory(route string, factory func() Handler) bool {
	if factory == nil {
		return r.AddRoute(route, nil)
	}
	return r.AddRoute(route, HandlerFunc(func(req *applink.Request) Response {
		return factory().Process(req)
	}))
}

// Use appends filters applied to every dispatched handler. The first
// filter registered is the outermost.
func (r *Router) Use(filters ...Filter) {
	r.filters = append(r.filters, filters...)
}

// Resolve looks up path under scheme and returns the stored handler with
// the extracted parameters.
func (r *Router) Resolve(scheme, path string) (*Match, bool) {
	return r.table.Lookup(scheme, path)
}

// Route returns the handler that would serve path under scheme, bound to
// the extracted parameters and wrapped in the router's filters.
func (r *Router) Route(scheme, path string) (Handler, bool) {
	m, ok := r.table.Lookup(scheme, path)
	if !ok {
		return nil, false
	}
	return ApplyFilters(m.Bind(), r.filters...), true
}

// Handle dispatches a decoded request. The boolean is false when no route
// matched, in which case the response has StatusNotFound.
func (r *Router) Handle(req *applink.Request) (Response, bool) {
	h, ok := r.Route(req.Scheme, req.Path)
	if !ok {
		r.logger.Debug("no route", "scheme", req.Scheme, "path", req.Path, "request_id", req.ID)
		return NewResponse(req, StatusNotFound), false
	}

	resp := h.Process(req)
	r.logger.Debug("request handled",
		"scheme", req.Scheme,
		"path", req.Path,
		"status", resp.Status.String(),
		"request_id", req.ID,
	)
	return resp, true
}

// HandleURL decodes and dispatches a navigation URL. It returns true iff a
// route matched and its handler responded with StatusOK.
func (r *Router) HandleURL(rawURL string) bool {
	req, err := applink.Parse(rawURL)
	if err != nil {
		r.logger.Debug("invalid url", "url", rawURL, "error", err)
		return false
	}
	resp, ok := r.Handle(req)
	return ok && resp.Status == StatusOK
}

// Routes lists the registered routes when the table supports listing.
func (r *Router) Routes() []RouteInfo {
	if lister, ok := r.table.(interface{ Routes() []RouteInfo }); ok {
		return lister.Routes()
	}
	return nil
}
