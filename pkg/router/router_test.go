package router

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
)

func TestRouterAddRouteWithoutScheme(t *testing.T) {
	r := New()
	h := newTestHandler("path")
	if !r.AddRoute("/path", h) {
		t.Fatal("AddRoute() = false, want true")
	}

	m, ok := r.Resolve("", "/path")
	if !ok || m.Handler != Handler(h) {
		t.Errorf("Resolve(\"\", /path) = %v, %v; want handler", m, ok)
	}
}

func TestRouterAddRouteWithScheme(t *testing.T) {
	r := New()
	h := newTestHandler("app")
	r.AddRoute("app://path", h)

	if _, ok := r.Resolve("", "/path"); ok {
		t.Error("schemeless lookup should not match app route")
	}
	m, ok := r.Resolve("app", "/path")
	if !ok || m.Handler != Handler(h) {
		t.Errorf("Resolve(app, /path) = %v, %v; want handler", m, ok)
	}
}

func TestRouterMultiLevelRoute(t *testing.T) {
	r := New()
	h := newTestHandler("controller")
	r.AddRoute("app://path/to/controller", h)

	m, ok := r.Resolve("app", "/path/to/controller")
	if !ok || m.Handler != Handler(h) {
		t.Errorf("Resolve() = %v, %v; want handler", m, ok)
	}
}

func TestRouterParameterRoute(t *testing.T) {
	r := New()
	h := newTestHandler("viewer")
	r.AddRoute("app://users/:userID/images/:imageID/viewer", h)

	m, ok := r.Resolve("app", "/users/7/images/42/viewer")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Handler != Handler(h) {
		t.Errorf("Handler = %v, want %v", m.Handler, h)
	}
	want := Params{"userID": "7", "imageID": "42"}
	if !reflect.DeepEqual(m.Params, want) {
		t.Errorf("Params = %v, want %v", m.Params, want)
	}
}

func TestRouterRejectsEmptyPath(t *testing.T) {
	tests := []string{"app://", "", "x://y://"}

	for _, route := range tests {
		r := New()
		if r.AddRoute(route, newTestHandler("h")) {
			t.Errorf("AddRoute(%q) = true, want false", route)
		}
		if routes := r.Routes(); len(routes) != 0 {
			t.Errorf("AddRoute(%q) modified the table: %v", route, routes)
		}
		if s := r.Table().(*TreeTable).String(); s != "" {
			t.Errorf("AddRoute(%q) created nodes:\n%s", route, s)
		}
	}
}

func TestRouterRegisterErrors(t *testing.T) {
	r := New()

	err := r.Register("app://", newTestHandler("h"))
	if !errors.HasCode(err, "R001") {
		t.Errorf("Register(app://) error = %v, want R001", err)
	}

	err = r.Register("app://x", nil)
	if !errors.HasCode(err, "R002") {
		t.Errorf("Register(nil handler) error = %v, want R002", err)
	}

	if err := r.Register("app:///", newTestHandler("root")); err != nil {
		t.Errorf("Register(app:///) error = %v, want nil", err)
	}
	if _, ok := r.Resolve("app", "/"); !ok {
		t.Error("expected scheme root route to resolve")
	}
}

func TestRouterLastWriteWins(t *testing.T) {
	r := New()
	first := newTestHandler("first")
	second := newTestHandler("second")
	if !r.AddRoute("app://a/b", first) || !r.AddRoute("app://a/b", second) {
		t.Fatal("re-registering must succeed")
	}

	m, ok := r.Resolve("app", "/a/b")
	if !ok || m.Handler != Handler(second) {
		t.Errorf("Resolve() handler = %v, want second", m)
	}
}

func TestRouterHandleURL(t *testing.T) {
	r := New()
	var got *applink.Request
	r.AddRoute("app://users/:id", HandlerFunc(func(req *applink.Request) Response {
		got = req
		return NewResponse(req, StatusOK)
	}))
	r.AddRoute("app://denied", HandlerFunc(func(req *applink.Request) Response {
		return NewResponse(req, StatusForbidden)
	}))

	if !r.HandleURL("app://users/42") {
		t.Fatal("HandleURL(app://users/42) = false, want true")
	}
	if got == nil || got.Param("id") != "42" {
		t.Errorf("handler params = %v, want id=42", got)
	}

	if r.HandleURL("app://missing") {
		t.Error("HandleURL on an unregistered route should be false")
	}
	if r.HandleURL("") {
		t.Error("HandleURL(\"\") should be false")
	}
	if r.HandleURL("/users/42") {
		t.Error("HandleURL without scheme should not reach app routes")
	}
}

func TestRouterHandleNonOKStatus(t *testing.T) {
	r := New()
	r.AddRoute("app://denied", HandlerFunc(func(req *applink.Request) Response {
		return NewResponse(req, StatusForbidden)
	}))

	if r.HandleURL("app://denied") {
		t.Error("HandleURL should be false when the handler does not respond OK")
	}

	req, _ := applink.Parse("app://denied")
	resp, ok := r.Handle(req)
	if !ok {
		t.Fatal("Handle() matched = false, want true")
	}
	if resp.Status != StatusForbidden {
		t.Errorf("Status = %v, want %v", resp.Status, StatusForbidden)
	}
	if resp.URL != "app://denied" {
		t.Errorf("URL = %q, want %q", resp.URL, "app://denied")
	}
}

func TestRouterHandleNoRoute(t *testing.T) {
	r := New()
	req, _ := applink.Parse("app://nowhere")

	resp, ok := r.Handle(req)
	if ok {
		t.Error("Handle() matched = true, want false")
	}
	if resp.Status != StatusNotFound {
		t.Errorf("Status = %v, want %v", resp.Status, StatusNotFound)
	}
}

func TestRouterHandlerlessMatchRespondsNotFound(t *testing.T) {
	table := NewTreeTable()
	table.AddRoute("app", "/ghost", nil)
	r := New(WithTable(table))

	req, _ := applink.Parse("app://ghost")
	resp, ok := r.Handle(req)
	if !ok {
		t.Fatal("Handle() matched = false, want true")
	}
	if resp.Status != StatusNotFound {
		t.Errorf("Status = %v, want %v", resp.Status, StatusNotFound)
	}
}

func TestRouterRegisterFactory(t *testing.T) {
	r := New()
	built := 0
	r.RegisterFactory("app://new", func() Handler {
		built++
		return newTestHandler("fresh")
	})

	if built != 0 {
		t.Fatal("factory must not run at registration")
	}
	r.HandleURL("app://new")
	r.HandleURL("app://new")
	if built != 2 {
		t.Errorf("factory ran %d times, want 2", built)
	}

	if r.RegisterFactory("app://nil", nil) {
		t.Error("RegisterFactory(nil) = true, want false")
	}
}

func TestRouterFiltersWrapDispatch(t *testing.T) {
	var order []string
	tag := func(name string) Filter {
		return FilterFunc(func(next Handler) Handler {
			return HandlerFunc(func(req *applink.Request) Response {
				order = append(order, name)
				return next.Process(req)
			})
		})
	}

	r := New(WithFilters(tag("first")))
	r.Use(tag("second"))
	r.AddRoute("app://x", HandlerFunc(func(req *applink.Request) Response {
		order = append(order, "handler")
		return NewResponse(req, StatusOK)
	}))

	if !r.HandleURL("app://x") {
		t.Fatal("HandleURL() = false")
	}
	want := []string{"first", "second", "handler"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRouterRouteBindsParams(t *testing.T) {
	r := New()
	r.AddRoute("/users/:id", HandlerFunc(func(req *applink.Request) Response {
		resp := NewResponse(req, StatusOK)
		resp.Params["id"] = req.Param("id")
		return resp
	}))

	h, ok := r.Route("", "/users/9")
	if !ok {
		t.Fatal("Route() matched = false")
	}
	req, _ := applink.Parse("/users/9")
	resp := h.Process(req)
	if resp.Params["id"] != "9" {
		t.Errorf("id = %v, want 9", resp.Params["id"])
	}
	if len(req.Params) != 0 {
		t.Error("binding must not modify the caller's request")
	}

	if _, ok := r.Route("", "/nope"); ok {
		t.Error("Route() on unregistered path should miss")
	}
}

func TestRouterLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := New(WithLogger(logger))

	r.AddRoute("app://x", newTestHandler("x"))
	r.AddRoute("app://", newTestHandler("bad"))

	out := buf.String()
	for _, want := range []string{"route registered", "route rejected", "component=router"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRouterBacktrackingTable(t *testing.T) {
	r := New(WithTable(NewTreeTable(WithBacktracking())))
	r.AddRoute("app://settings", newTestHandler("settings"))
	r.AddRoute("app://users/:id", newTestHandler("user"))

	if !r.HandleURL("app://users/1") {
		t.Error("backtracking router should resolve app://users/1")
	}
	if !r.HandleURL("app://settings") {
		t.Error("backtracking router should resolve app://settings")
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusOK, "ok"},
		{StatusBadRequest, "bad_request"},
		{StatusForbidden, "forbidden"},
		{StatusNotFound, "not_found"},
		{StatusUnauthorized, "unauthorized"},
		{StatusError, "error"},
		{Status(99), "unknown"},
		{Status(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
