package router

import "strings"

// Kind distinguishes the two component variants.
type Kind uint8

const (
	// KindStatic matches a segment by exact equality.
	KindStatic Kind = iota

	// KindParam matches any non-empty segment and binds it to a name.
	KindParam
)

// SchemeSeparator splits a route's scheme from its path.
const SchemeSeparator = "://"

// Component is one compiled segment matcher of a route. Components are
// comparable values: two components are structurally equal when both
// their kind and raw value are equal.
type Component struct {
	kind Kind
	raw  string
}

// Static returns a component matching exactly raw.
func Static(raw string) Component {
	return Component{kind: KindStatic, raw: raw}
}

// Param returns a component binding any non-empty segment to name.
func Param(name string) Component {
	return Component{kind: KindParam, raw: name}
}

// Kind returns the component variant.
func (c Component) Kind() Kind { return c.kind }

// Raw returns the literal for static components or the parameter name.
func (c Component) Raw() string { return c.raw }

// Match reports whether segment satisfies the component.
func (c Component) Match(segment string) bool {
	switch c.kind {
	case KindParam:
		return segment != ""
	default:
		return segment == c.raw
	}
}

// Bindings returns the parameters extracted from segment. Static
// components never bind anything.
func (c Component) Bindings(segment string) Params {
	if c.kind != KindParam || segment == "" {
		return Params{}
	}
	return Params{c.raw: segment}
}

// String renders the component in route syntax.
func (c Component) String() string {
	if c.kind == KindParam {
		return ":" + c.raw
	}
	return c.raw
}

// Compile turns a route path into its component sequence. Tokens starting
// with ":" become parameters; every other token is static. An empty path
// compiles to an empty sequence.
func Compile(path string) []Component {
	tokens := Tokenize(path)
	if len(tokens) == 0 {
		return nil
	}
	components := make([]Component, len(tokens))
	for i, tok := range tokens {
		if strings.HasPrefix(tok, ":") {
			components[i] = Param(tok[1:])
		} else {
			components[i] = Static(tok)
		}
	}
	return components
}

// Tokenize splits a path into segments after trimming surrounding
// whitespace and "/" delimiters. Interior empty segments are kept.
func Tokenize(path string) []string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// SplitRoute separates "scheme://path" into its scheme and path. Routes
// without a separator have no scheme. When the separator appears more than
// once, the scheme is the text before the first and the path the text
// after the last.
func SplitRoute(route string) (scheme string, hasScheme bool, path string) {
	first := strings.Index(route, SchemeSeparator)
	if first < 0 {
		return "", false, route
	}
	last := strings.LastIndex(route, SchemeSeparator)
	return route[:first], true, route[last+len(SchemeSeparator):]
}
