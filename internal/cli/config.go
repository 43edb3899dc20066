package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dargo/pkg/errors"
	"github.com/matzehuels/dargo/pkg/integrations/crates"
)

const defaultCacheTTL = 24 * time.Hour

// Config is the optional config.toml.
type Config struct {
	Registry struct {
		Index    string `toml:"index"`
		CacheTTL string `toml:"cache-ttl"`
	} `toml:"registry"`
	Cache struct {
		Dir      string `toml:"dir"`
		RedisURL string `toml:"redis-url"`
	} `toml:"cache"`

	cacheTTL time.Duration
}

func defaultConfig() *Config {
	cfg := &Config{cacheTTL: defaultCacheTTL}
	cfg.Registry.Index = crates.DefaultIndexURL
	return cfg
}

// loadConfig reads path, or the default location when path is empty, and
// applies DARGO_* environment overrides. Only an explicitly named file has
// to exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		if dir, err := configDir(); err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		switch {
		case err == nil:
		case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		case stderrors.Is(err, fs.ErrNotExist):
			return nil, errors.New(errors.ErrCodeInvalidInput, "config file %s does not exist", path)
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	if v := os.Getenv("DARGO_INDEX_URL"); v != "" {
		cfg.Registry.Index = v
	}
	if v := os.Getenv("DARGO_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("DARGO_REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}

	if cfg.Registry.Index == "" {
		cfg.Registry.Index = crates.DefaultIndexURL
	}
	if cfg.Registry.CacheTTL != "" {
		ttl, err := time.ParseDuration(cfg.Registry.CacheTTL)
		if err != nil || ttl < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid registry.cache-ttl %q", cfg.Registry.CacheTTL)
		}
		cfg.cacheTTL = ttl
	}
	return cfg, nil
}
