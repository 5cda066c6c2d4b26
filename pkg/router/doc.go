// Package router resolves navigation URLs to registered handlers.
//
// The router provides:
//   - Route compilation into static and parameter components
//   - A component tree per scheme for shared-prefix storage
//   - Parameter extraction during lookup
//   - Filters wrapping every dispatched handler
//   - Typed decoding of path parameters
//
// # Route Syntax
//
// A route is "scheme://path" or a bare path, which registers under the
// default (empty) scheme. Leading and trailing "/" in the path are
// ignored. A segment starting with ":" is a named parameter:
//
//	app://users/:userID/images/:imageID/viewer
//	/settings/privacy
//
// A parameter matches any non-empty segment. Schemes are independent
// namespaces: a route registered under "app" is never found by a lookup
// without a scheme.
//
// # Matching
//
// Lookups walk the tree one node at a time (see TreeTable). Registering
// the same path twice replaces the earlier handler. Tables created with
// WithBacktracking explore every matching branch instead.
//
// # Usage
//
//	r := router.New()
//	r.AddRoute("app://users/:id", router.HandlerFunc(func(req *applink.Request) router.Response {
//	    fmt.Println(req.Param("id"))
//	    return router.NewResponse(req, router.StatusOK)
//	}))
//
//	handled := r.HandleURL("app://users/42")
package router
