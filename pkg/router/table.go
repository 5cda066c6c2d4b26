package router

import (
	"strings"
	"sync"
)

// DefaultScheme is the namespace of routes registered without a scheme.
const DefaultScheme = ""

// RoutingTable stores routes and resolves paths against them. Implement
// it to provide custom route storage to a Router.
type RoutingTable interface {
	// AddRoute registers handler for path under scheme, replacing any
	// handler already registered for the same path.
	AddRoute(scheme, path string, handler Handler)

	// Lookup resolves path under scheme.
	Lookup(scheme, path string) (*Match, bool)
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	// Scheme is the route namespace ("" for schemeless routes).
	Scheme string `json:"scheme"`

	// Pattern is the route path in route syntax (e.g. "/users/:id").
	Pattern string `json:"pattern"`
}

// String renders the route as it would be registered.
func (ri RouteInfo) String() string {
	if ri.Scheme == DefaultScheme {
		return ri.Pattern
	}
	return ri.Scheme + SchemeSeparator + strings.TrimPrefix(ri.Pattern, "/")
}

// TreeTable is a RoutingTable holding one component tree per scheme.
// Registration and lookup may run concurrently.
type TreeTable struct {
	mu        sync.RWMutex
	roots     []*node
	backtrack bool
}

// TableOption configures a TreeTable.
type TableOption func(*TreeTable)

// WithBacktracking makes lookups try every matching branch, so a route is
// found even when a sibling registered after it could also match the next
// segment. Without it lookups follow the single-frontier walk described
// on node.lookup.
func WithBacktracking() TableOption {
	return func(t *TreeTable) {
		t.backtrack = true
	}
}

// NewTreeTable creates an empty table.
func NewTreeTable(opts ...TableOption) *TreeTable {
	t := &TreeTable{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// schemeRoot returns the root for scheme, or nil.
func (t *TreeTable) schemeRoot(scheme string) *node {
	for _, root := range t.roots {
		if root.component.Match(scheme) {
			return root
		}
	}
	return nil
}

// AddRoute implements RoutingTable.
func (t *TreeTable) AddRoute(scheme, path string, handler Handler) {
	components := Compile(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	root := t.schemeRoot(scheme)
	if root == nil {
		root = newNode(Static(scheme))
		t.roots = append(t.roots, root)
	}
	root.insert(components, handler)
}

// Lookup implements RoutingTable.
func (t *TreeTable) Lookup(scheme, path string) (*Match, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root := t.schemeRoot(scheme)
	if root == nil {
		return nil, false
	}

	tokens := append([]string{scheme}, Tokenize(path)...)

	if t.backtrack {
		nodes := root.search(tokens)
		if nodes == nil {
			return nil, false
		}
		return &Match{
			Scheme:  scheme,
			Handler: nodes[len(nodes)-1].handler,
			Params:  bindPath(nodes, tokens),
		}, true
	}

	handler, params, ok := root.lookup(tokens)
	if !ok {
		return nil, false
	}
	return &Match{Scheme: scheme, Handler: handler, Params: params}, true
}

// Routes lists every registered route in tree order.
func (t *TreeTable) Routes() []RouteInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var routes []RouteInfo
	for _, root := range t.roots {
		scheme := root.component.raw
		if root.handler != nil {
			routes = append(routes, RouteInfo{Scheme: scheme, Pattern: "/"})
		}
		root.walk(nil, func(nd *node, components []Component) {
			if nd.handler != nil {
				routes = append(routes, RouteInfo{Scheme: scheme, Pattern: pattern(components)})
			}
		})
	}
	return routes
}

// String renders the forest as an indented tree. Nodes holding a handler
// are marked with "*".
func (t *TreeTable) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var b strings.Builder
	for _, root := range t.roots {
		root.dump(&b, 0)
	}
	return b.String()
}
