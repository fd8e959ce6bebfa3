package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigsight/gaslog-cli/internal/config"
	"github.com/rigsight/gaslog-cli/internal/pipeline"
)

func TestSheetName_ConfigFallback(t *testing.T) {
	origCfg, origSheet := cfg, classifySheet
	defer func() { cfg, classifySheet = origCfg, origSheet }()

	cfg = &config.Config{}
	cfg.Ingest.SheetName = "录井数据"

	classifySheet = ""
	assert.Equal(t, "录井数据", sheetName())

	// the flag wins when set
	classifySheet = "Sheet2"
	assert.Equal(t, "Sheet2", sheetName())
}

func TestLoadParams_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("background_window: 20\nmin_oil_span: 2.0\n"), 0o644))

	base := pipeline.DefaultConfig()
	got, err := loadParams(path, base)
	require.NoError(t, err)

	// Overridden fields change, untouched fields keep their defaults.
	assert.Equal(t, 20, got.BackgroundWindow)
	assert.Equal(t, 2.0, got.MinOilSpan)
	assert.Equal(t, base.TrendWindow, got.TrendWindow)
	assert.Equal(t, base.WeightTg, got.WeightTg)
}

func TestLoadParams_MissingFile(t *testing.T) {
	_, err := loadParams("/nonexistent/basin.yaml", pipeline.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read params file")
}

func TestLoadParams_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("background_window: [not a number"), 0o644))

	_, err := loadParams(path, pipeline.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse params file")
}
