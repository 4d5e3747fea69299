package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the file locations the tools read and write. All paths have
// defaults so the tools run without a config file at all.
type Config struct {
	ModelPath   string `yaml:"model_path"`
	HoldoutPath string `yaml:"holdout_path"`
	AuditDir    string `yaml:"audit_dir"`
	AuditPrefix string `yaml:"audit_prefix"`
	ReportsDir  string `yaml:"reports_dir"`
	QueuePath   string `yaml:"queue_path"`
}

// ApplyDefaults populates zero values with the well-known locations.
func (c *Config) ApplyDefaults() {
	if c.ModelPath == "" {
		c.ModelPath = "data/model_artifact.json"
	}
	if c.HoldoutPath == "" {
		c.HoldoutPath = "data/holdout.json"
	}
	if c.AuditDir == "" {
		c.AuditDir = "data/audit_logs"
	}
	if c.AuditPrefix == "" {
		c.AuditPrefix = "intent_audit_"
	}
	if c.ReportsDir == "" {
		c.ReportsDir = "reports"
	}
	if c.QueuePath == "" {
		c.QueuePath = "data/label_queue.json"
	}
}

// Load reads configuration from the given path, falling back to the
// RIFLETT_CONFIG env var and then config.yaml. A missing file is not an
// error; defaults apply.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv("RIFLETT_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
