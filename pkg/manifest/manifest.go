package manifest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/router"
)

// Entry binds one route to a named handler.
type Entry struct {
	Route   string `json:"route"`
	Handler string `json:"handler"`
}

// Manifest is a declared route table.
type Manifest struct {
	Routes []Entry `json:"routes"`
}

// Parse decodes a manifest from JSON.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("M003").Wrap(err)
	}
	return &m, nil
}

// Load fetches and decodes the manifest at src.
func Load(ctx context.Context, src Source) (*Manifest, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, errors.New("M002").
			WithDetail(src.String()).
			Wrap(err)
	}
	return Parse(data)
}

// Apply registers every entry on r, resolving handler names through
// handlers. Entries are checked before any is registered, so a manifest
// naming an unknown handler (M001) or holding a route with an empty path
// (R001) leaves r unchanged.
func (m *Manifest) Apply(r *router.Router, handlers map[string]router.Handler) error {
	for i, e := range m.Routes {
		if _, ok := handlers[e.Handler]; !ok {
			return errors.New("M001").
				WithDetail(fmt.Sprintf("routes[%d]: handler %q for %s", i, e.Handler, e.Route))
		}
		if _, _, path := router.SplitRoute(e.Route); len(path) == 0 {
			return errors.New("R001").
				WithDetail(fmt.Sprintf("routes[%d]: %q", i, e.Route))
		}
	}

	for _, e := range m.Routes {
		if err := r.Register(e.Route, handlers[e.Handler]); err != nil {
			return err
		}
	}
	return nil
}

// HandlerNames returns the distinct handler names the manifest refers to,
// in first-use order.
func (m *Manifest) HandlerNames() []string {
	seen := make(map[string]bool, len(m.Routes))
	var names []string
	for _, e := range m.Routes {
		if !seen[e.Handler] {
			seen[e.Handler] = true
			names = append(names, e.Handler)
		}
	}
	return names
}
