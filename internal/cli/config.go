package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relpanel/internal/server"
	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/pipeline"
)

// Config is the user configuration read from config.toml. Command-line flags
// take precedence over every value here.
//
//	[layout]
//	width = 800
//
//	[render]
//	format = "svg,png"
//	scale = 2
//	labels = true
//
//	[cache]
//	redis_addr = "localhost:6379"
//	namespace = "staging"
//
//	[server]
//	addr = ":8080"
//
//	[storage]
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
}

// LayoutConfig overrides scene panel sizes. Zero keeps the scene's size.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig sets render defaults.
type RenderConfig struct {
	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`
	Labels bool    `toml:"labels"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Dir       string `toml:"dir"`
	Disabled  bool   `toml:"disabled"`
	RedisAddr string `toml:"redis_addr"`

	// Namespace prefixes every cache key, so several deployments can share
	// one Redis instance.
	Namespace string `toml:"namespace"`
}

// ServerConfig configures `relpanel serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig selects the saved-layout backend of `relpanel serve`.
type StorageConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Format: pipeline.FormatSVG,
			Scale:  pipeline.DefaultScale,
		},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := errors.ValidateSize("layout.width", cfg.Layout.Width); err != nil {
		return cfg, err
	}
	if err := errors.ValidateSize("layout.height", cfg.Layout.Height); err != nil {
		return cfg, err
	}
	return cfg, nil
}
