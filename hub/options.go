package hub

import (
	"os"
	"path/filepath"

	"github.com/rowzip/rowzip/core"
)

type config struct {
	logger     core.Logger
	jobLogPath string
}

type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger:     core.NewNopLogger(),
		jobLogPath: filepath.Join(os.TempDir(), "rowzip-joblog.json"),
	}
}

func WithLogger(logger core.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithJobLogPath(path string) Option {
	return func(c *config) {
		c.jobLogPath = path
	}
}
