// Package config provides the configuration loader for grove.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for a session. It looks for grove.yaml in
// cwd and its ancestors, then in the user config directory. A missing file
// is not an error; defaults apply.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	cfg := defaults()

	path, ok := l.findConfiguration(cwd)
	if !ok {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, zerr.Wrap(err, "reading config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.With(errors.Join(domain.ErrConfigInvalid, err), "path", path)
	}

	apply(&cfg, file)

	for name, raw := range file.Cache.TTL {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			l.Logger.Warn(fmt.Sprintf("ignoring invalid ttl %q for category %s", raw, name))
			continue
		}
		cfg.TTLs[name] = ttl
	}

	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	dir := cwd
	for {
		path := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if base, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(base, "grove", domain.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func defaults() domain.Config {
	cfg := domain.Config{
		GraphBaseURL:  domain.DefaultGraphBaseURL,
		TokenEnv:      domain.DefaultTokenEnv,
		CacheMaxBytes: domain.DefaultCacheMaxBytes,
		TTLs:          map[string]time.Duration{},
	}
	if base, err := os.UserCacheDir(); err == nil {
		cfg.CachePath = filepath.Join(base, "grove", domain.CacheFileName)
	}
	return cfg
}

func apply(cfg *domain.Config, file File) {
	if v := strings.TrimRight(file.Graph.BaseURL, "/"); v != "" {
		cfg.GraphBaseURL = v
	}
	if file.Graph.TokenEnv != "" {
		cfg.TokenEnv = file.Graph.TokenEnv
	}
	if file.Cache.Path != "" {
		cfg.CachePath = expandHome(file.Cache.Path)
	}
	if file.Cache.MaxBytes > 0 {
		cfg.CacheMaxBytes = file.Cache.MaxBytes
	}
	cfg.LogJSON = file.Log.JSON
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || !fs.ValidPath(strings.TrimPrefix(path, "~/")) {
		return path
	}
	return filepath.Join(home, path[2:])
}
