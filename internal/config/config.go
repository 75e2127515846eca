// Package config loads codejson settings from an optional codejson.yaml,
// CODEJSON_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-codejson/pkg/schema"
)

// EnvPrefix namespaces environment overrides, e.g. CODEJSON_SERVER_ADDR.
const EnvPrefix = "CODEJSON"

// Config is the resolved configuration.
type Config struct {
	Schemas SchemasConfig `mapstructure:"schemas"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Form    FormConfig    `mapstructure:"form"`
	Reduce  ReduceConfig  `mapstructure:"reduce"`
}

// SchemasConfig selects where page schemas are read from. With neither Dir
// nor BaseURL set the embedded schemas are used.
type SchemasConfig struct {
	Dir         string        `mapstructure:"dir"`
	BaseURL     string        `mapstructure:"base_url"`
	DefaultPage string        `mapstructure:"default_page"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FormConfig toggles the scaffolding appended to compiled forms. Preset
// names an optional JSON file overriding labels per component path.
type FormConfig struct {
	CredentialField bool   `mapstructure:"credential_field"`
	SubmitAction    bool   `mapstructure:"submit_action"`
	Preset          string `mapstructure:"preset"`
}

// ReduceConfig tunes submission reduction.
type ReduceConfig struct {
	SchemaOrder bool `mapstructure:"schema_order"`
	Validate    bool `mapstructure:"validate"`
}

// Load reads the configuration. When path is empty codejson.yaml is looked up
// in the working directory and a missing file falls back to defaults; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("codejson")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Schemas.Dir = strings.TrimSpace(cfg.Schemas.Dir)
	cfg.Schemas.BaseURL = strings.TrimSpace(cfg.Schemas.BaseURL)
	cfg.Schemas.DefaultPage = strings.TrimSpace(cfg.Schemas.DefaultPage)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are plain scalars; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schemas.dir", "")
	v.SetDefault("schemas.base_url", "")
	v.SetDefault("schemas.default_page", schema.DefaultPage)
	v.SetDefault("schemas.timeout", 10*time.Second)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("form.credential_field", true)
	v.SetDefault("form.submit_action", true)
	v.SetDefault("form.preset", "")
	v.SetDefault("reduce.schema_order", false)
	v.SetDefault("reduce.validate", true)
}

func validateConfig(cfg *Config) error {
	if err := schema.ValidatePage(cfg.Schemas.DefaultPage); err != nil {
		return fmt.Errorf("config: schemas.default_page: %w", err)
	}
	if cfg.Schemas.Dir != "" && cfg.Schemas.BaseURL != "" {
		return errors.New("config: schemas.dir and schemas.base_url are mutually exclusive")
	}
	if cfg.Schemas.Timeout < 0 {
		return fmt.Errorf("config: schemas.timeout must not be negative, got %s", cfg.Schemas.Timeout)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", cfg.Log.Format)
	}
	return nil
}
