package router

import "github.com/vango-dev/linkroute/pkg/applink"

// ApplyFilters wraps handler in filters. Filters run in order (first to
// last), with the handler at the end.
func ApplyFilters(handler Handler, filters ...Filter) Handler {
	for i := len(filters) - 1; i >= 0; i-- {
		handler = filters[i].Apply(handler)
	}
	return handler
}

// Chain creates a filter that combines multiple filters in order.
func Chain(filters ...Filter) Filter {
	return FilterFunc(func(next Handler) Handler {
		return ApplyFilters(next, filters...)
	})
}

// Skip bypasses f for requests where condition is true.
func Skip(condition func(req *applink.Request) bool, f Filter) Filter {
	return FilterFunc(func(next Handler) Handler {
		wrapped := f.Apply(next)
		return HandlerFunc(func(req *applink.Request) Response {
			if condition(req) {
				return next.Process(req)
			}
			return wrapped.Process(req)
		})
	})
}

// Only runs f only for requests where condition is true.
func Only(condition func(req *applink.Request) bool, f Filter) Filter {
	return Skip(func(req *applink.Request) bool { return !condition(req) }, f)
}
