package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aurastudio/aura/internal/aura"
	"github.com/aurastudio/aura/internal/cache"
	"github.com/aurastudio/aura/internal/config"
	"github.com/aurastudio/aura/internal/logging"
	"github.com/aurastudio/aura/internal/prefs"
	"github.com/aurastudio/aura/internal/render"
)

// commandContext lazily resolves the pieces commands share: config, client,
// cache, renderer. Nothing is loaded until a command asks for it, so
// `aura --help` works with a broken config file.
type commandContext struct {
	configFlag *string
	prefsFlag  *string

	cfg    *config.Config
	client *aura.Client
	assets *cache.Cache
}

func newCommandContext(configFlag, prefsFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, prefsFlag: prefsFlag}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

func (c *commandContext) ensureClient() (*aura.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := aura.NewClient(cfg.APIBind)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

func (c *commandContext) ensureCache() (*cache.Cache, error) {
	if c.assets != nil {
		return c.assets, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		return nil, err
	}
	c.assets = cache.New(cfg.CacheDir, logger)
	return c.assets, nil
}

func (c *commandContext) userPrefs() prefs.Prefs {
	return prefs.Load(*c.prefsFlag)
}

func (c *commandContext) renderer() *render.Renderer {
	theme := render.ByName(c.userPrefs().Theme)
	return render.NewRenderer(theme, stdoutIsTerminal())
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
