package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/model_artifact.json", cfg.ModelPath)
	assert.Equal(t, "data/holdout.json", cfg.HoldoutPath)
	assert.Equal(t, "data/audit_logs", cfg.AuditDir)
	assert.Equal(t, "intent_audit_", cfg.AuditPrefix)
	assert.Equal(t, "reports", cfg.ReportsDir)
	assert.Equal(t, "data/label_queue.json", cfg.QueuePath)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "model_path: /models/current.json\naudit_dir: /exports/audits\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/models/current.json", cfg.ModelPath)
	assert.Equal(t, "/exports/audits", cfg.AuditDir)
	assert.Equal(t, "intent_audit_", cfg.AuditPrefix)
	assert.Equal(t, "reports", cfg.ReportsDir)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model_path: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
