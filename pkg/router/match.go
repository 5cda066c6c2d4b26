package router

import "github.com/vango-dev/linkroute/pkg/applink"

// Match is the result of a successful lookup.
type Match struct {
	// Scheme is the namespace the match was found in.
	Scheme string

	// Handler is the handler stored at the matched node. It is nil when
	// the walk ended on a node no route terminates at.
	Handler Handler

	// Params are the bindings collected along the matched path.
	Params Params
}

// Bind returns a handler that merges the match parameters into a copy of
// the request and then invokes the matched handler. Route bindings
// override parameters already on the request. A match without a handler
// responds with StatusNotFound.
func (m *Match) Bind() Handler {
	return HandlerFunc(func(req *applink.Request) Response {
		bound := *req
		bound.Params = make(map[string]string, len(req.Params)+len(m.Params))
		for k, v := range req.Params {
			bound.Params[k] = v
		}
		for k, v := range m.Params {
			bound.Params[k] = v
		}

		if m.Handler == nil {
			return NewResponse(&bound, StatusNotFound)
		}
		return m.Handler.Process(&bound)
	})
}
