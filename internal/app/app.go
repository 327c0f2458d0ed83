package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aurastudio/aura/internal/aura"
	"github.com/aurastudio/aura/internal/config"
	"github.com/aurastudio/aura/internal/logging"
	"github.com/aurastudio/aura/internal/prefs"
	"github.com/aurastudio/aura/internal/render"
	"github.com/aurastudio/aura/internal/state"
)

// Options configure the watch loop.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/aura/prefs.toml
	PollEvery  int    // seconds; zero uses default
	Colored    bool
	Out        io.Writer // defaults to os.Stdout
}

// Run polls the backend and prints one status line per refresh until the
// context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load aura config: %w", err)
	}

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := aura.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init aura client: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Populate the store before the first line is printed.
	refresh(ctx, store, client, logger)
	StartPoller(ctx, store, client, interval, logger)

	renderer := render.NewRenderer(render.ByName(userPrefs.Theme), opts.Colored)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		fmt.Fprintln(out, renderer.StatusLine(store.Snapshot()))
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
