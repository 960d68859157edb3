package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_MergePriority(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "from-env.db"}}},
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "from-flags.db"}},
			Backup:  Backup{HandlePath: "flags-handle.json"},
		},
	)
	b = b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// earlier sources win for fields they set; defaults only fill gaps
	assert.Equal(t, "from-env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "flags-handle.json", cfg.Backup.HandlePath)
	assert.Equal(t, ".", cfg.Backup.ExportDir)
	assert.Equal(t, 5*time.Minute, cfg.Workers.BackupInterval)
}

func TestConfigBuilder_DefaultsAlone(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "progress-keeper.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "backup-handle.json", cfg.Backup.HandlePath)
}

func TestConfigBuilder_PropagatesError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	_, err := b.build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := &StructuredConfig{
		Backup:  Backup{HandlePath: "h.json", ExportDir: "."},
		Workers: Workers{BackupInterval: time.Minute},
	}

	err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestValidate_NegativeInterval(t *testing.T) {
	cfg := &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "keeper.db"}},
		Backup:  Backup{HandlePath: "h.json", ExportDir: "."},
		Workers: Workers{BackupInterval: -time.Second},
	}

	err := cfg.validate()
	require.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}
