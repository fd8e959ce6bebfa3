// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rigsight/gaslog-cli/internal/pipeline"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig     `yaml:"store" mapstructure:"store"`
	Ingest   IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Fetch    FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Pipeline pipeline.Config `yaml:"pipeline" mapstructure:"pipeline"`
	Batch    BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server   ServerConfig    `yaml:"server" mapstructure:"server"`
	Log      LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the optional run-persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// IngestConfig configures spreadsheet parsing.
type IngestConfig struct {
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`
	SkipRows  int    `yaml:"skip_rows" mapstructure:"skip_rows"`
	// Charset forces a CSV character set; empty means detect (UTF-8, then GBK).
	Charset string `yaml:"charset" mapstructure:"charset"`
}

// FetchConfig configures remote log retrieval.
type FetchConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// BatchConfig bounds well-level parallelism.
type BatchConfig struct {
	MaxConcurrentWells int `yaml:"max_concurrent_wells" mapstructure:"max_concurrent_wells"`
}

// ServerConfig configures the classification server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("GASLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "gaslog.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_wells", 4)
	v.SetDefault("ingest.skip_rows", 0)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 2)
	v.SetDefault("fetch.requests_per_sec", 2.0)

	def := pipeline.DefaultConfig()
	v.SetDefault("pipeline.background_window", def.BackgroundWindow)
	v.SetDefault("pipeline.trend_window", def.TrendWindow)
	v.SetDefault("pipeline.slope_threshold", def.SlopeThreshold)
	v.SetDefault("pipeline.correlation_threshold", def.CorrelationThreshold)
	v.SetDefault("pipeline.min_oil_span", def.MinOilSpan)
	v.SetDefault("pipeline.min_show_span", def.MinShowSpan)
	v.SetDefault("pipeline.weight_tg", def.WeightTg)
	v.SetDefault("pipeline.weight_triangle", def.WeightTriangle)
	v.SetDefault("pipeline.weight_three_ratio", def.WeightThreeRatio)
	v.SetDefault("pipeline.narrow_gap", def.NarrowGap)
	v.SetDefault("pipeline.moderate_gap", def.ModerateGap)

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
