// Package cli implements the aolachart command-line interface.
//
// Commands cover the attribute relation engine (list, report, chart, graph),
// the activity packet list, the packet transcoder, cache management, and an
// HTTP serve mode. All commands support --verbose (-v) for debug-level
// logging; loggers travel through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vmoranv/aolachart/pkg/aolaapi"
	"github.com/vmoranv/aolachart/pkg/attr"
	"github.com/vmoranv/aolachart/pkg/attr/chart"
	"github.com/vmoranv/aolachart/pkg/buildinfo"
	"github.com/vmoranv/aolachart/pkg/cache"
	"github.com/vmoranv/aolachart/pkg/config"
	apperrors "github.com/vmoranv/aolachart/pkg/errors"
)

const appName = "aolachart"

// responseTTL is how long cached API responses stay fresh in persistent
// backends. The in-process repository additionally retains everything for
// the process lifetime.
const responseTTL = 24 * time.Hour

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string

	cfg    config.Config
	loaded bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Aolachart renders Aola Star attribute relation charts",
		Long:         `Aolachart queries the Aola Star data API and renders per-attribute damage relations as text reports, composed PNG charts, or node-link graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/aolachart/config.toml)")

	root.AddCommand(c.attrCommand())
	root.AddCommand(c.packetsCommand())
	root.AddCommand(c.transcodeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// Config loads the configuration once and memoizes it.
func (c *CLI) Config() (config.Config, error) {
	if c.loaded {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, err
	}
	c.cfg, c.loaded = cfg, true
	return cfg, nil
}

// engine bundles the per-command wiring: API client, repository, icon cache,
// and chart renderer. Constructed once per command invocation.
type engine struct {
	cfg      config.Config
	client   *aolaapi.Client
	repo     *attr.Repository
	icons    *attr.IconCache
	renderer *chart.Renderer
}

// newEngine builds the engine from configuration. It fails when no API base
// URL is configured; everything else has defaults.
func (c *CLI) newEngine(ctx context.Context, noCache bool) (*engine, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"no API base URL configured; set api_base_url in the config file or AOLACHART_API_URL")
	}
	if err := apperrors.ValidateBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}

	backend, err := c.newCacheBackend(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	client := aolaapi.NewClient(cfg.APIBaseURL, backend, responseTTL)
	icons, err := attr.NewIconCache(cfg.IconDir, cfg.IconBaseURL, nil, c.Logger)
	if err != nil {
		return nil, err
	}

	return &engine{
		cfg:    cfg,
		client: client,
		repo:   attr.NewRepository(client),
		icons:  icons,
	}, nil
}

// relationBuckets computes both directions for a subject: fetch the
// subject's raw map, prefetch every other attribute's map (the defend
// classification contract), then classify. Returns attack and defend bucket
// sets.
func (e *engine) relationBuckets(ctx context.Context, subject attr.Attribute) (attr.BucketSet, attr.BucketSet, error) {
	relations, err := e.repo.Relations(ctx, subject.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := e.repo.PreloadRelations(ctx, subject.ID); err != nil {
		return nil, nil, err
	}

	attrs, err := e.repo.Attributes(ctx)
	if err != nil {
		return nil, nil, err
	}
	index, err := e.repo.NameIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	attack := attr.ClassifyAttack(subject.ID, relations, index)
	defend := attr.ClassifyDefend(subject.ID, attrs, e.repo.Lookup())
	return attack, defend, nil
}

// chartRenderer lazily constructs the renderer; font probing only happens
// for commands that actually draw.
func (e *engine) chartRenderer(logger *log.Logger) *chart.Renderer {
	if e.renderer == nil {
		e.renderer = chart.NewRenderer(e.icons, logger)
	}
	return e.renderer
}

func (c *CLI) newCacheBackend(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.CacheBackend {
	case "", "file":
		backend, err := cache.NewFileCache(cfg.CacheDir)
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return backend, nil
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, "", 0)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown cache backend %q (want file, memory, redis, or none)", cfg.CacheBackend)
	}
}
