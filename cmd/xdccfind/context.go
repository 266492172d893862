package main

import (
	"io"
	"strings"
	"sync"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/logger"
	"github.com/xdccfind/xdccfind/internal/search"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && *c.logLevelFlag != "" {
			cfg.Logging.Level = *c.logLevelFlag
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the application logger writing console output to w.
func (c *commandContext) newLogger(w io.Writer) (*logger.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Out:        w,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}), nil
}

// newSearchService builds a search service over the named finders, or the
// configured finders when names is empty.
func (c *commandContext) newSearchService(log *logger.Logger, names []string) (*search.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = cfg.Search.Finders
	}
	finders, err := search.BuildFinders(names, cfg, log.Logger)
	if err != nil {
		return nil, err
	}
	return search.NewService(finders, log.Logger), nil
}
