// Package config loads bridgemap settings and sets up logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joeblew999/plat-bridges/internal/snapshot"
	"github.com/joeblew999/plat-bridges/internal/visual"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig    `yaml:"data" mapstructure:"data"`
	Marker visual.Sizing `yaml:"marker" mapstructure:"marker"`
	Log    LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the snapshot files.
type DataConfig struct {
	Dir   string         `yaml:"dir" mapstructure:"dir"`
	Files snapshot.Files `yaml:"files" mapstructure:"files"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from bridgemap.yaml (optional) and BRIDGEMAP_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("bridgemap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BRIDGEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.dir", ".data")
	v.SetDefault("data.files.bridges", snapshot.DefaultFiles.Bridges)
	v.SetDefault("data.files.inspections", snapshot.DefaultFiles.Inspections)
	v.SetDefault("data.files.sufficiency", snapshot.DefaultFiles.Sufficiency)
	v.SetDefault("data.files.projects", snapshot.DefaultFiles.Projects)
	v.SetDefault("marker.min_radius", visual.DefaultSizing.MinRadius)
	v.SetDefault("marker.max_radius", visual.DefaultSizing.MaxRadius)
	v.SetDefault("marker.min_zoom", visual.DefaultSizing.MinZoom)
	v.SetDefault("marker.per_zoom", visual.DefaultSizing.PerZoom)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if cfg.Marker.MaxRadius < cfg.Marker.MinRadius {
		return nil, eris.Errorf("config: marker.max_radius %v below marker.min_radius %v", cfg.Marker.MaxRadius, cfg.Marker.MinRadius)
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	// Frames and details go to stdout; keep logs off it.
	zapCfg.OutputPaths = []string{"stderr"}

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
