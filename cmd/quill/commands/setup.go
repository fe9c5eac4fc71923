package commands

import (
	"github.com/spf13/cobra"

	"github.com/quillcheck/quill/cache"
	"github.com/quillcheck/quill/config"
	"github.com/quillcheck/quill/editor"
	"github.com/quillcheck/quill/lint"
	"github.com/quillcheck/quill/logger"
	"github.com/quillcheck/quill/runner"
	"github.com/quillcheck/quill/style"
)

// session is the shared wiring for lint and watch: config, checks, engine,
// and optionally a cache store.
type session struct {
	cfg    *config.Config
	checks []lint.Check
	engine *lint.Engine
	store  *cache.Store
	close  func()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	checks, err := style.Load(cfg.StylesPath, cfg.Styles)
	if err != nil {
		return nil, err
	}

	registry := lint.NewRegistry()
	editor.Register(registry)
	engine := lint.NewEngine(registry, logger.Logger)

	s := &session{cfg: cfg, checks: checks, engine: engine, close: func() {}}
	if !cfg.Cache.Disabled {
		db, err := cache.Open(cfg.Cache.Path, logger.Logger)
		if err != nil {
			// The engine must always be able to produce a correct Result;
			// a broken cache only costs recomputation.
			logger.Warnw("cache unavailable, continuing without persistence",
				"path", cfg.Cache.Path, "error", err)
		} else {
			s.store = cache.NewStore(db, logger.Logger)
			s.close = func() { db.Close() }
		}
	}
	return s, nil
}

func (s *session) runner(noCache bool) (*runner.Runner, error) {
	return runner.New(s.engine, s.store, s.cfg, s.checks, noCache, logger.Logger)
}
