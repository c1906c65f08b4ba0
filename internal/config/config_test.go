package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "food_access/washington.json", cfg.Input.Geometry)
	assert.Equal(t, "food_access/food_access.csv", cfg.Input.Access)
	assert.Equal(t, "", cfg.Input.AccessSheet)
	assert.Equal(t, "CTIDFP00", cfg.Input.TractIDField)
	assert.Equal(t, "CensusTract", cfg.Input.AccessIDField)
	assert.True(t, cfg.Input.DropFirstColumn)
	assert.Equal(t, "WA", cfg.Analysis.State)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, 1000, cfg.Render.Width)
	assert.Equal(t, 800, cfg.Render.Height)
	assert.Equal(t, "#EEEEEE", cfg.Render.Background)
	assert.Equal(t, "#AAAAAA", cfg.Render.StateFill)
	assert.Equal(t, "#1F77B4", cfg.Render.Highlight)
	assert.Equal(t, 2010, cfg.Tiger.Year)
	assert.Equal(t, "/tmp/foodmap", cfg.Tiger.TempDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
input:
  geometry: data/tl_2010_41_tract00.zip
  access: data/atlas.xlsx
  access_sheet: Food Access Research Atlas
  drop_first_column: false
analysis:
  state: OR
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/tl_2010_41_tract00.zip", cfg.Input.Geometry)
	assert.Equal(t, "data/atlas.xlsx", cfg.Input.Access)
	assert.Equal(t, "Food Access Research Atlas", cfg.Input.AccessSheet)
	assert.False(t, cfg.Input.DropFirstColumn)
	assert.Equal(t, "OR", cfg.Analysis.State)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 1000, cfg.Render.Width)
	assert.Equal(t, "CTIDFP00", cfg.Input.TractIDField)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
analysis:
  state: OR
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("FOODMAP_ANALYSIS_STATE", "ID")
	t.Setenv("FOODMAP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "ID", cfg.Analysis.State)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("FOODMAP_RENDER_WIDTH", "1600")
	t.Setenv("FOODMAP_OUTPUT_DIR", "maps")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1600, cfg.Render.Width)
	assert.Equal(t, "maps", cfg.Output.Dir)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("input: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	return &Config{
		Input:    InputConfig{Geometry: "tracts.json", Access: "access.csv"},
		Analysis: AnalysisConfig{State: "WA"},
		Render: RenderConfig{
			Width: 1000, Height: 800,
			Background: "#EEEEEE", StateFill: "#AAAAAA", Highlight: "1F77B4",
		},
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := validDefaults()
	cfg.Input.Geometry = ""
	cfg.Analysis.State = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input.geometry is required")
	assert.Contains(t, err.Error(), "analysis.state is required")
}

func TestValidate_Size(t *testing.T) {
	cfg := validDefaults()
	cfg.Render.Height = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestValidate_Colors(t *testing.T) {
	for _, bad := range []string{"", "#EEE", "gray", "#GGGGGG"} {
		cfg := validDefaults()
		cfg.Render.Highlight = bad

		err := cfg.Validate()
		require.Error(t, err, "color %q", bad)
		assert.Contains(t, err.Error(), "render.highlight")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	want, err := Load()
	require.NoError(t, err)
	want.Analysis.State = "OR"
	want.Input.AccessSheet = "Food Access Research Atlas"
	want.Render.Width = 640

	f, err := os.Create(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.NoError(t, want.WriteYAML(f))
	require.NoError(t, f.Close())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate_ColorErrorsInFixedOrder(t *testing.T) {
	cfg := validDefaults()
	cfg.Render.Background = "gray"
	cfg.Render.StateFill = "silver"
	cfg.Render.Highlight = "blue"

	want := "config: render.background must be a #RRGGBB color; " +
		"render.state_fill must be a #RRGGBB color; " +
		"render.highlight must be a #RRGGBB color"
	for range 10 {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, want, err.Error())
	}
}
