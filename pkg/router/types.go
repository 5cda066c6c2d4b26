package router

import "github.com/vango-dev/linkroute/pkg/applink"

// Handler processes a routed request.
type Handler interface {
	Process(req *applink.Request) Response
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(req *applink.Request) Response

// Process implements Handler.
func (f HandlerFunc) Process(req *applink.Request) Response {
	return f(req)
}

// Params maps parameter names to the path segments bound to them.
type Params map[string]string

// Status reports the outcome of processing a request.
type Status int

const (
	// StatusOK means the request was handled.
	StatusOK Status = iota

	// StatusBadRequest means the request was malformed.
	StatusBadRequest

	// StatusForbidden means valid authentication is missing.
	StatusForbidden

	// StatusNotFound means no route handles the request.
	StatusNotFound

	// StatusUnauthorized means required authorization is missing.
	StatusUnauthorized

	// StatusError is a general failure.
	StatusError
)

var statusNames = [...]string{
	StatusOK:           "ok",
	StatusBadRequest:   "bad_request",
	StatusForbidden:    "forbidden",
	StatusNotFound:     "not_found",
	StatusUnauthorized: "unauthorized",
	StatusError:        "error",
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Response is the result of processing a request.
type Response struct {
	// URL is the URL that was requested.
	URL string

	// Status is the outcome of processing.
	Status Status

	// Params can be set by the handler while processing.
	Params map[string]any
}

// NewResponse creates a response for req with the given status.
func NewResponse(req *applink.Request, status Status) Response {
	resp := Response{Status: status, Params: make(map[string]any)}
	if req != nil && req.RawURL != nil {
		resp.URL = req.RawURL.String()
	}
	return resp
}

// Filter transforms handlers. Filters registered on a Router wrap every
// dispatched handler.
type Filter interface {
	Apply(next Handler) Handler
}

// FilterFunc is a function adapter for Filter.
type FilterFunc func(next Handler) Handler

// Apply implements Filter.
func (f FilterFunc) Apply(next Handler) Handler {
	return f(next)
}
