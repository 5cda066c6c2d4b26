package middleware

import (
	"testing"
	"time"

	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
	"golang.org/x/time/rate"
)

func TestRateLimitRejectsOverBurst(t *testing.T) {
	calls := 0
	h := RateLimit(rate.Every(time.Hour), 2).Apply(router.HandlerFunc(func(req *applink.Request) router.Response {
		calls++
		return router.NewResponse(req, router.StatusOK)
	}))

	want := []router.Status{router.StatusOK, router.StatusOK, router.StatusError}
	for i, status := range want {
		resp := h.Process(mustParse(t, "app://x"))
		if resp.Status != status {
			t.Errorf("request %d: Status = %v, want %v", i, resp.Status, status)
		}
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestRateLimitSharedAcrossRoutes(t *testing.T) {
	r := router.New(router.WithFilters(RateLimit(rate.Every(time.Hour), 1)))
	r.AddRoute("app://a", statusHandler(router.StatusOK))
	r.AddRoute("/b", statusHandler(router.StatusOK))

	if !r.HandleURL("app://a") {
		t.Fatal("first request should pass")
	}
	if r.HandleURL("/b") {
		t.Error("second request should be limited even on another route")
	}
}

func TestRateLimitInfAllowsAll(t *testing.T) {
	h := RateLimit(rate.Inf, 0).Apply(statusHandler(router.StatusOK))
	for i := 0; i < 100; i++ {
		if resp := h.Process(mustParse(t, "app://x")); resp.Status != router.StatusOK {
			t.Fatalf("request %d limited with rate.Inf", i)
		}
	}
}

func TestRateLimitResponseCarriesReason(t *testing.T) {
	h := RateLimit(rate.Every(time.Hour), 0).Apply(statusHandler(router.StatusOK))
	resp := h.Process(mustParse(t, "app://x"))
	if resp.Params["error"] != "rate limit exceeded" {
		t.Errorf("Params[error] = %v, want rate limit exceeded", resp.Params["error"])
	}
	if resp.URL != "app://x" {
		t.Errorf("URL = %q, want app://x", resp.URL)
	}
}
