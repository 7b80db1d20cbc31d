package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/questmap/internal/mapswitch"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/tier"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://questmap/config.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// fileConfig mirrors the YAML layout. Zero values mean "not set".
type fileConfig struct {
	InitialMap  string                            `yaml:"initial_map"`
	DBPath      string                            `yaml:"db_path"`
	CacheSize   int                               `yaml:"cache_size"`
	Markable    []string                          `yaml:"markable"`
	Palette     map[string]treatmentFile          `yaml:"palette"`
	Backgrounds map[string]mapswitch.Presentation `yaml:"backgrounds"`
}

type treatmentFile struct {
	Label  string `yaml:"label"`
	Class  string `yaml:"class"`
	Fill   string `yaml:"fill"`
	Stroke string `yaml:"stroke"`
}

// defaultBackgroundKey names the fallback presentation in the backgrounds
// map.
const defaultBackgroundKey = "default"

// Load reads the YAML file at path and overlays it onto base.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, base)
	if err != nil {
		var ic *ErrInvalidConfig
		if errors.As(err, &ic) {
			ic.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse validates YAML data against the config schema and overlays it onto
// base.
func Parse(data []byte, base Config) (Config, error) {
	if err := validateDocument(data); err != nil {
		return Config{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, &ErrInvalidConfig{Err: err}
	}
	return fc.apply(base)
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	if fc.InitialMap != "" {
		cfg.InitialMap = progress.MapType(fc.InitialMap)
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.CacheSize != 0 {
		cfg.CacheSize = fc.CacheSize
	}
	if len(fc.Markable) > 0 {
		cfg.Markable = fc.Markable
	}

	if len(fc.Palette) > 0 {
		overrides := make(map[tier.Tier]tier.Treatment, len(fc.Palette))
		for name, tf := range fc.Palette {
			t, err := tier.Parse(name)
			if err != nil {
				return Config{}, &ErrInvalidConfig{Err: err}
			}
			overrides[t] = tier.Treatment{Label: tf.Label, Class: tf.Class, Fill: tf.Fill, Stroke: tf.Stroke}
		}
		cfg.Palette = cfg.Palette.Override(overrides)
	}

	if len(fc.Backgrounds) > 0 {
		over := mapswitch.Backgrounds{ByMap: make(map[progress.MapType]mapswitch.Presentation)}
		for name, p := range fc.Backgrounds {
			if name == defaultBackgroundKey {
				over.Default = p
				continue
			}
			over.ByMap[progress.MapType(name)] = p
		}
		cfg.Backgrounds = cfg.Backgrounds.Merge(over)
	}
	return cfg, nil
}

// validateDocument checks YAML data against the embedded schema. The YAML
// is round-tripped through JSON so the validator sees JSON types.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ErrInvalidConfig{Err: fmt.Errorf("parse yaml: %w", err)}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &ErrInvalidConfig{Err: fmt.Errorf("config must be a mapping with string keys: %w", err)}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidConfig{Err: err}
	}

	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return &ErrInvalidConfig{Err: err}
	}
	return nil
}

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
