package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/linkroute/internal/config"
	"github.com/vango-dev/linkroute/internal/errors"
	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/manifest"
	"github.com/vango-dev/linkroute/pkg/middleware"
	"github.com/vango-dev/linkroute/pkg/router"
	"golang.org/x/time/rate"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	manifest   string
	routes     []string
	verbose    bool
}

// app is a router assembled from configuration.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	router   *router.Router
	registry *prometheus.Registry
	metrics  *middleware.Metrics
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads --config, or the nearest linkroute.json, falling back
// to defaults when none exists. Flag overrides are validated like file
// settings.
func loadConfig(opts *globalOptions, logger *slog.Logger) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if errors.HasCode(err, "C001") {
			logger.Debug("no config file, using defaults")
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.manifest != "" {
		cfg.Manifest = opts.manifest
		if !strings.HasPrefix(opts.manifest, manifest.S3Scheme) {
			if abs, err := filepath.Abs(opts.manifest); err == nil {
				cfg.Manifest = abs
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newApp loads configuration and builds the router it describes.
func newApp(ctx context.Context, opts *globalOptions, logOut io.Writer) (*app, error) {
	logger := newLogger(logOut, opts.verbose)
	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return nil, err
	}
	return buildApp(ctx, cfg, opts.routes, logger, nil)
}

// buildApp wires filters, the manifest, and extra routes into a router.
// client is used for s3:// manifests; when nil one is created from cfg.
func buildApp(ctx context.Context, cfg *config.Config, extra []string, logger *slog.Logger, client manifest.S3API) (*app, error) {
	var tableOpts []router.TableOption
	if cfg.Backtracking {
		tableOpts = append(tableOpts, router.WithBacktracking())
	}

	a := &app{cfg: cfg, logger: logger}
	a.router = router.New(
		router.WithTable(router.NewTreeTable(tableOpts...)),
		router.WithLogger(logger),
	)

	if cfg.RateLimited() {
		a.router.Use(middleware.RateLimit(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst))
	}
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		filter, rec := middleware.NewPrometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(a.registry),
		)
		a.router.Use(filter)
		a.metrics = rec
	}
	if cfg.Tracing.Enabled {
		a.router.Use(middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	handlers := builtinHandlers()

	if loc := cfg.ManifestLocation(); loc != "" {
		if client == nil && strings.HasPrefix(loc, manifest.S3Scheme) {
			s3Client, err := newS3Client(ctx, cfg.S3)
			if err != nil {
				return nil, errors.New("M002").WithDetail(loc).Wrap(err)
			}
			client = s3Client
		}
		src, err := manifest.Open(loc, client)
		if err != nil {
			return nil, errors.New("M002").WithDetail(loc).Wrap(err)
		}
		m, err := manifest.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		if err := m.Apply(a.router, handlers); err != nil {
			return nil, err
		}
		logger.Debug("manifest applied", "location", loc, "routes", len(m.Routes))
	}

	if err := manifestFromFlags(extra).Apply(a.router, handlers); err != nil {
		return nil, err
	}
	return a, nil
}

// manifestFromFlags turns ROUTE=HANDLER flags into manifest entries. A
// flag without "=" uses the "ok" handler.
func manifestFromFlags(routes []string) *manifest.Manifest {
	m := &manifest.Manifest{}
	for _, r := range routes {
		route, handler := r, "ok"
		if i := strings.LastIndex(r, "="); i >= 0 {
			route, handler = r[:i], r[i+1:]
		}
		m.Routes = append(m.Routes, manifest.Entry{Route: route, Handler: handler})
	}
	return m
}

// builtinHandlers are the handler names manifests may refer to. Each
// responds with a fixed status and echoes the route parameters and
// extras.
func builtinHandlers() map[string]router.Handler {
	statuses := map[string]router.Status{
		"ok":           router.StatusOK,
		"forbidden":    router.StatusForbidden,
		"unauthorized": router.StatusUnauthorized,
		"notfound":     router.StatusNotFound,
		"error":        router.StatusError,
	}

	handlers := make(map[string]router.Handler, len(statuses))
	for name, status := range statuses {
		handlers[name] = echoHandler(status)
	}
	return handlers
}

func echoHandler(status router.Status) router.Handler {
	return router.HandlerFunc(func(req *applink.Request) router.Response {
		resp := router.NewResponse(req, status)
		for k, v := range req.Params {
			resp.Params[k] = v
		}
		for k, v := range req.Extras {
			resp.Params["extras."+k] = v
		}
		return resp
	})
}

// newS3Client builds an S3 client from the default AWS configuration
// chain. An endpoint in cfg switches to path-style addressing for
// S3-compatible stores.
func newS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
