package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Fadil369/Nphies-pro/internal/compliance"
	"github.com/Fadil369/Nphies-pro/internal/metrics"
	"github.com/Fadil369/Nphies-pro/internal/policy"
	"github.com/Fadil369/Nphies-pro/internal/scorer"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig          `yaml:"server" mapstructure:"server"`
	Log        LogConfig             `yaml:"log" mapstructure:"log"`
	FhirStore  FhirStoreConfig       `yaml:"fhir_store" mapstructure:"fhir_store"`
	Policy     policy.Config         `yaml:"policy" mapstructure:"policy"`
	Compliance compliance.Config     `yaml:"compliance" mapstructure:"compliance"`
	Metrics    metrics.Config        `yaml:"metrics" mapstructure:"metrics"`
	Scorer     scorer.BaselineConfig `yaml:"scorer" mapstructure:"scorer"`
	Features   FeaturesConfig        `yaml:"features" mapstructure:"features"`
	Fraud      FraudConfig           `yaml:"fraud" mapstructure:"fraud"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// FhirStoreConfig configures the FHIR reference resolver.
type FhirStoreConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	Token          string  `yaml:"token" mapstructure:"token"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// FeaturesConfig configures feature extraction.
type FeaturesConfig struct {
	// ExperienceTablePath points at the optional YAML provider experience
	// table. Empty means the stable hash fallback.
	ExperienceTablePath string `yaml:"experience_table_path" mapstructure:"experience_table_path"`
}

// FraudConfig configures the heuristic fraud-risk signal.
type FraudConfig struct {
	// RiskThreshold marks a claim as high fraud risk at or above this
	// score in [0, 1].
	RiskThreshold float64 `yaml:"risk_threshold" mapstructure:"risk_threshold"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLAIMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("fhir_store.requests_per_sec", 10)
	v.SetDefault("fhir_store.burst", 20)
	v.SetDefault("policy.approve_threshold", 0.85)
	v.SetDefault("policy.deny_threshold", 0.15)
	v.SetDefault("policy.approval_factor", 0.95)
	v.SetDefault("policy.estimate_base", 0.5)
	v.SetDefault("policy.estimate_step", 0.1)
	v.SetDefault("policy.low_prob_threshold", 0.3)
	v.SetDefault("policy.high_amount_threshold", 50000)
	v.SetDefault("policy.many_items_threshold", 10)
	v.SetDefault("policy.fast_track_threshold", 0.8)
	v.SetDefault("compliance.max_submission_delay_days", 90)
	v.SetDefault("compliance.high_amount_threshold", 100000)
	v.SetDefault("compliance.min_items_for_high_amount", 5)
	v.SetDefault("metrics.cost_saving_per_auto_claim", 50)
	v.SetDefault("scorer.base_probability", 0.8)
	v.SetDefault("scorer.amount_scale", 100000)
	v.SetDefault("scorer.amount_weight", 0.3)
	v.SetDefault("scorer.experience_weight", 0.2)
	v.SetDefault("scorer.complexity_weight", 0.1)
	v.SetDefault("scorer.cost_class_floor", 0.15)
	v.SetDefault("fraud.risk_threshold", 0.7)

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
