package httptap

import (
	"log/slog"
	"net/http"

	"github.com/bugtap/bugtap/pkg/capturelog"
	"github.com/bugtap/bugtap/pkg/config"
	"github.com/bugtap/bugtap/pkg/event"
	"github.com/bugtap/bugtap/pkg/filter"
	"github.com/bugtap/bugtap/pkg/logging"
	"github.com/bugtap/bugtap/pkg/middleware"
)

// Chain assembles the configured pipeline stages around a handler.
type Chain struct {
	cfg    *config.Config
	logger *slog.Logger
	store  capturelog.Store
	filter *filter.Filter
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the operational logger. Without it one is built from the
// configuration's log section.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) { c.logger = logger }
}

// WithStore sets the capture store, replacing the in-memory store the
// configuration would otherwise create.
func WithStore(store capturelog.Store) Option {
	return func(c *Chain) { c.store = store }
}

// NewChain builds a chain from cfg. The logger is constructed once here
// and injected into every stage; stages never configure logging themselves.
func NewChain(cfg *config.Config, opts ...Option) (*Chain, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Chain{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.New(logging.Config{
			Level:  logging.ParseLevel(cfg.Log.Level),
			Format: logging.ParseFormat(cfg.Log.Format),
		})
	}
	if c.store == nil && cfg.Store.Enabled {
		c.store = capturelog.NewMemoryStore(cfg.Store.MaxEntries)
	}
	// The filter is compiled exactly once here; Validate is for callers
	// checking a loaded file without building a chain.
	f, err := cfg.Capture.CompileFilter()
	if err != nil {
		return nil, err
	}
	c.filter = f
	return c, nil
}

// Wrap wraps handler with the configured stages and returns a plain
// http.Handler. Stage order, outermost first: timing, query dump, capture.
func (c *Chain) Wrap(handler http.Handler) (http.Handler, error) {
	app, err := c.wrapStages(AppFromHandler(handler))
	if err != nil {
		return nil, err
	}
	return Handler(app, c.logger), nil
}

// WrapApp applies the configured stages to an App without lowering it back
// to net/http, for callers that speak the event contract directly.
func (c *Chain) WrapApp(app event.App) (event.App, error) {
	return c.wrapStages(app)
}

func (c *Chain) wrapStages(app event.App) (event.App, error) {
	if c.cfg.Capture.Enabled {
		opts := []middleware.CaptureOption{}
		if c.store != nil {
			opts = append(opts, middleware.WithStore(c.store))
		}
		if c.filter != nil {
			opts = append(opts, middleware.WithFilter(c.filter))
		}
		if len(c.cfg.Capture.Extract) > 0 {
			opts = append(opts, middleware.WithExtract(c.cfg.Capture.Extract))
		}
		if c.cfg.Capture.MaxBodySize > 0 {
			opts = append(opts, middleware.WithMaxBodySize(c.cfg.Capture.MaxBodySize))
		}
		stage, err := middleware.NewCapture(app, c.logger, opts...)
		if err != nil {
			return nil, err
		}
		app = stage.Handle
	}
	if c.cfg.QueryLog {
		app = middleware.NewQueryLogger(app, c.logger).Handle
	}
	if c.cfg.Timing {
		app = middleware.NewTiming(app, c.logger).Handle
	}
	return app, nil
}

// Store returns the capture store, if one is configured.
func (c *Chain) Store() capturelog.Store {
	return c.store
}

// Logger returns the chain's operational logger.
func (c *Chain) Logger() *slog.Logger {
	return c.logger
}
