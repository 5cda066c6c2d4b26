package router

import "strings"

// node is one component of the routing forest. Scheme roots hold a static
// component whose raw value is the scheme.
type node struct {
	// component matches the segment this node stands for
	component Component

	// handler is set iff a route terminates here
	handler Handler

	// children in insertion order
	children []*node
}

// newNode creates a node with no handler and no children.
func newNode(c Component) *node {
	return &node{component: c}
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

// findChild returns the first child structurally equal to c. Matching
// semantics are not consulted: a parameter child never stands in for a
// static component or vice versa.
func (n *node) findChild(c Component) *node {
	for _, child := range n.children {
		if child.component == c {
			return child
		}
	}
	return nil
}

// newChain builds a detached branch for components. Only the last node
// receives the handler. components must not be empty.
func newChain(components []Component, handler Handler) *node {
	head := newNode(components[0])
	cur := head
	for _, c := range components[1:] {
		next := newNode(c)
		cur.children = append(cur.children, next)
		cur = next
	}
	cur.handler = handler
	return head
}

// insert registers handler for components below n. Shared prefixes reuse
// existing nodes; the first missing component starts a new branch holding
// the whole remainder. Inserting an existing path replaces its handler.
func (n *node) insert(components []Component, handler Handler) {
	cur := n
	for i, c := range components {
		child := cur.findChild(c)
		if cur.isLeaf() || child == nil {
			cur.children = append(cur.children, newChain(components[i:], handler))
			return
		}
		cur = child
	}
	cur.handler = handler
}

// lookup matches tokens against the subtree rooted at n, testing the first
// token against n itself.
//
// Nodes are popped one at a time from the back of a frontier. A node that
// matches the current token consumes it, contributes its bindings, pushes
// all of its children and becomes the candidate. A node that does not match
// is dropped. The walk only succeeds when the frontier and the tokens run
// out together, so a matching node with unexplored siblings left on the
// frontier, or a non-matching sibling popped first, ends the walk in a miss.
// The candidate handler may be nil.
func (n *node) lookup(tokens []string) (Handler, Params, bool) {
	frontier := []*node{n}
	params := Params{}
	var candidate Handler

	for len(frontier) > 0 && len(tokens) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		token := tokens[0]
		if !cur.component.Match(token) {
			continue
		}

		for k, v := range cur.component.Bindings(token) {
			params[k] = v
		}
		tokens = tokens[1:]
		frontier = append(frontier, cur.children...)
		candidate = cur.handler
	}

	if len(frontier) == 0 && len(tokens) == 0 {
		return candidate, params, true
	}
	return nil, nil, false
}

// search matches tokens depth-first, trying every child whose component
// matches the next token in insertion order and backtracking on failure.
// It returns the nodes along the first path that consumes every token and
// ends at a node holding a handler.
func (n *node) search(tokens []string) []*node {
	if len(tokens) == 0 || !n.component.Match(tokens[0]) {
		return nil
	}
	rest := tokens[1:]
	if len(rest) == 0 {
		if n.handler == nil {
			return nil
		}
		return []*node{n}
	}
	for _, child := range n.children {
		if path := child.search(rest); path != nil {
			return append([]*node{n}, path...)
		}
	}
	return nil
}

// bindPath collects the bindings of a matched node path, later nodes
// overriding earlier ones.
func bindPath(path []*node, tokens []string) Params {
	params := Params{}
	for i, nd := range path {
		for k, v := range nd.component.Bindings(tokens[i]) {
			params[k] = v
		}
	}
	return params
}

// walk visits every node below n depth-first with the components leading
// to it.
func (n *node) walk(prefix []Component, fn func(nd *node, components []Component)) {
	for _, child := range n.children {
		components := append(append([]Component(nil), prefix...), child.component)
		fn(child, components)
		child.walk(components, fn)
	}
}

// pattern renders components as a route path.
func pattern(components []Component) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = c.String()
	}
	return "/" + strings.Join(parts, "/")
}

// dump writes the subtree rooted at n, one node per line.
func (n *node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if depth == 0 {
		if n.component.raw == DefaultScheme {
			b.WriteString("(default)")
		} else {
			b.WriteString(n.component.raw + SchemeSeparator)
		}
	} else {
		b.WriteString(n.component.String())
	}
	if n.handler != nil {
		b.WriteString(" *")
	}
	b.WriteString("\n")
	for _, child := range n.children {
		child.dump(b, depth+1)
	}
}
