package config

import (
	"fmt"
	"strings"
	"time"

	"tracker/internal/clock"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "TRACKER_"

type Config struct {
	TimeZone         string   `koanf:"time_zone"`
	StackName        string   `koanf:"stack_name"`
	OrdersTable      string   `koanf:"orders_table"`
	ReportBucket     string   `koanf:"report_bucket"`
	AttachmentBucket string   `koanf:"attachment_bucket"`
	ReportTopicArn   string   `koanf:"report_topic_arn"`
	MetricsNamespace string   `koanf:"metrics_namespace"`
	PublishMetrics   bool     `koanf:"publish_metrics"`
	ExportCSV        bool     `koanf:"export_csv"`
	LogLevel         string   `koanf:"log_level"`
	StatusFilter     []string `koanf:"status_filter"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"time_zone":         "UTC",
		"stack_name":        "tracker",
		"metrics_namespace": "Tracker/Orders",
		"publish_metrics":   true,
		"export_csv":        true,
		"log_level":         "info",
		"status_filter":     []string{},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// when one is given, then TRACKER_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, ErrorLoadingConfigFile(path, err)
		}
	}

	// 3. Env vars, e.g. TRACKER_ORDERS_TABLE -> orders_table
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.StatusFilter = compact(cfg.StatusFilter)
	return &cfg, nil
}

// Validate checks the settings the report lambda cannot run without
func (c *Config) Validate() error {
	var missing []string
	if c.OrdersTable == "" {
		missing = append(missing, "orders_table")
	}
	if c.ReportBucket == "" {
		missing = append(missing, "report_bucket")
	}
	if len(missing) > 0 {
		return ErrorMissingSetting(missing...)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured display time zone
func (c *Config) Location() (*time.Location, error) {
	return clock.LoadLocation(c.TimeZone)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
