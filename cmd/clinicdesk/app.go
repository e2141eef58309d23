package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinicdesk/internal/cache"
	"github.com/jwalitptl/clinicdesk/internal/client"
	"github.com/jwalitptl/clinicdesk/internal/config"
	templatesvc "github.com/jwalitptl/clinicdesk/internal/service/template"
	usersvc "github.com/jwalitptl/clinicdesk/internal/service/user"
	"github.com/jwalitptl/clinicdesk/pkg/circuitbreaker"
	"github.com/jwalitptl/clinicdesk/pkg/logger"
)

// app holds the wired collaborators a command runs against.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	api       *client.Client
	cache     cache.TemplateCache
	templates *templatesvc.Service
	users     *usersvc.Service
	registry  *prometheus.Registry
	closers   []func() error
}

func newLogger(opts *rootOptions, level string) *logger.Logger {
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	return logger.NewLogger(&logger.Config{Level: logger.ParseLevel(level), JSON: opts.jsonLogs})
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	log := newLogger(opts, cfg.Log.Level)
	registry := prometheus.NewRegistry()

	api, err := client.New(client.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		Token:             cfg.API.Token,
		RequestsPerSecond: cfg.Limits.RequestsPerSecond,
		Burst:             cfg.Limits.Burst,
		Breaker: circuitbreaker.Settings{
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
		},
		Registerer: registry,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, api: api, registry: registry}
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cache.RedisConfig{
			URL:    cfg.Cache.RedisURL,
			Prefix: cfg.Cache.Prefix,
			TTL:    cfg.Cache.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect template cache: %w", err)
		}
		a.cache = rc
		a.closers = append(a.closers, rc.Close)
	} else {
		a.cache = cache.NewMemory(cfg.Cache.TTL)
	}

	a.templates = templatesvc.NewService(api, a.cache, api.Metrics(), log)
	a.users = usersvc.NewService(api, log)
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// withApp wraps a command body with app setup and teardown.
func withApp(opts *rootOptions, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				a.log.Warn(err, "failed to close resources")
			}
		}()
		return run(cmd, a, args)
	}
}

// resultErr turns a failed service result into a command error.
func resultErr(success bool, msg string) error {
	if success {
		return nil
	}
	return errors.New(msg)
}
