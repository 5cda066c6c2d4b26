package middleware

import (
	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
	"golang.org/x/time/rate"
)

// RateLimit creates a filter that admits requests through a token bucket
// refilled at limit tokens per second with the given burst. A request
// arriving with no token available gets StatusError and the handler is
// not invoked. The bucket is shared by every handler the filter wraps.
//
//	r.Use(middleware.RateLimit(rate.Limit(10), 20))
func RateLimit(limit rate.Limit, burst int) router.Filter {
	limiter := rate.NewLimiter(limit, burst)

	return router.FilterFunc(func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *applink.Request) router.Response {
			if !limiter.Allow() {
				resp := router.NewResponse(req, router.StatusError)
				resp.Params["error"] = "rate limit exceeded"
				return resp
			}
			return next.Process(req)
		})
	})
}
