package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Midas    MidasConfig    `yaml:"midas" mapstructure:"midas"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Wind     WindConfig     `yaml:"wind" mapstructure:"wind"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// MidasConfig holds MIDAS Civil NX API connection settings.
type MidasConfig struct {
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	APIKey    string  `yaml:"api_key" mapstructure:"api_key"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ClassifyConfig configures the geometric classifier.
type ClassifyConfig struct {
	PierRadius   float64 `yaml:"pier_radius" mapstructure:"pier_radius"`
	RadiusUnit   string  `yaml:"radius_unit" mapstructure:"radius_unit"`
	PierBaseName string  `yaml:"pier_base_name" mapstructure:"pier_base_name"`
	StartIndex   int     `yaml:"start_index" mapstructure:"start_index"`
}

// WindConfig configures the wind-load pipeline.
type WindConfig struct {
	DatabasePath   string `yaml:"database_path" mapstructure:"database_path"`
	MaxItemsPerPut int    `yaml:"max_items_per_put" mapstructure:"max_items_per_put"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WINDLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("midas.base_url", "https://moa-engineers.midasit.com:443/civil")
	v.SetDefault("midas.rate_limit", 5.0)
	v.SetDefault("classify.pier_radius", 10.0)
	v.SetDefault("classify.radius_unit", "FT")
	v.SetDefault("classify.pier_base_name", "Pier")
	v.SetDefault("classify.start_index", 1)
	v.SetDefault("wind.database_path", "wind.yaml")
	v.SetDefault("wind.max_items_per_put", 5000)
	v.SetDefault("store.path", "windload.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Modes map to the top-level commands: "classify", "wind", "runs".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "classify", "wind":
		if c.Midas.BaseURL == "" {
			problems = append(problems, "midas.base_url is required")
		}
		if c.Midas.APIKey == "" {
			problems = append(problems, "midas.api_key is required")
		}
		if c.Classify.PierRadius <= 0 {
			problems = append(problems, "classify.pier_radius must be > 0")
		}
		if mode == "wind" {
			if c.Wind.DatabasePath == "" {
				problems = append(problems, "wind.database_path is required")
			}
			if c.Wind.MaxItemsPerPut <= 0 {
				problems = append(problems, "wind.max_items_per_put must be > 0")
			}
		}
	case "runs":
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
