// Package config resolves questmap settings from built-in defaults, an
// optional YAML file and QUESTMAP_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/questmap/internal/loader"
	"github.com/abhisek/questmap/internal/mapswitch"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/svgdoc"
	"github.com/abhisek/questmap/internal/tier"
)

// Config holds every questmap setting.
type Config struct {
	// InitialMap is activated before any interaction. Default: europe.
	InitialMap progress.MapType

	// DBPath overrides the event store location. Empty uses the store
	// default.
	DBPath string

	// CacheSize bounds the loader's document cache.
	CacheSize int

	// Markable lists the SVG tags that can carry a tier marking.
	Markable []string

	Palette     tier.Palette
	Backgrounds mapswitch.Backgrounds
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		InitialMap:  progress.Europe,
		CacheSize:   loader.DefaultCacheSize,
		Markable:    append([]string(nil), svgdoc.DefaultMarkable...),
		Palette:     tier.DefaultPalette(),
		Backgrounds: mapswitch.DefaultBackgrounds(),
	}
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overlays QUESTMAP_* environment variables onto cfg. Unparseable
// numbers are ignored.
func ApplyEnv(cfg Config) Config {
	if m := strings.TrimSpace(os.Getenv("QUESTMAP_INITIAL_MAP")); m != "" {
		cfg.InitialMap = progress.MapType(m)
	}
	if p := os.Getenv("QUESTMAP_DB"); p != "" {
		cfg.DBPath = p
	}
	if s := os.Getenv("QUESTMAP_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.CacheSize = n
		}
	}
	return cfg
}

// Resolve builds the effective configuration: defaults, then the YAML file
// at path (or QUESTMAP_CONFIG when path is empty), then the environment.
func Resolve(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("QUESTMAP_CONFIG")
	}
	if path != "" {
		var err error
		if cfg, err = Load(path, cfg); err != nil {
			return Config{}, err
		}
	}
	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks semantic constraints the schema cannot express.
func (c Config) Validate() error {
	if c.InitialMap == "" {
		return &ErrInvalidConfig{Err: fmt.Errorf("initial map is required")}
	}
	if c.CacheSize < 1 {
		return &ErrInvalidConfig{Err: fmt.Errorf("cache size must be positive, got %d", c.CacheSize)}
	}
	if len(c.Markable) == 0 {
		return &ErrInvalidConfig{Err: fmt.Errorf("at least one markable tag is required")}
	}
	for _, t := range tier.All()[1:] {
		if c.Palette.Treatment(t).Class == "" {
			return &ErrInvalidConfig{Err: fmt.Errorf("palette %s has no class", t)}
		}
	}
	return nil
}

// ErrInvalidConfig is returned when a configuration file or value is
// rejected.
type ErrInvalidConfig struct {
	Path string
	Err  error
}

func (e *ErrInvalidConfig) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ErrInvalidConfig) Unwrap() error {
	return e.Err
}
