package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ENV", "LOG_LEVEL", "LOG_FORMAT", "OUTPUT_DIR", "REPORT_SHEET_NAME",
	"REPORT_STATIC_VALUES", "EXPORT_FORMATS", "REPORT_WORKERS",
	"CURRICULUM", "CURRICULUM_FILE", "DASHBOARD_TOP_N",
}

// chdirTemp isolates a test from the working directory and from variables a
// previous test's godotenv call may have left in the process environment.
func chdirTemp(t *testing.T) string {
	t.Helper()
	for _, key := range envKeys {
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "./out", cfg.Report.OutputDir)
	assert.Equal(t, "Data Source", cfg.Report.SheetName)
	assert.False(t, cfg.Report.StaticValues)
	assert.Equal(t, []string{"xlsx"}, cfg.Report.Formats)
	assert.Equal(t, 4, cfg.Report.Workers)
	assert.Equal(t, "dakhil-2025", cfg.Curriculum.Revision)
	assert.Empty(t, cfg.Curriculum.File)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := chdirTemp(t)

	env := `ENV=production
LOG_LEVEL=debug
OUTPUT_DIR=/tmp/reports
EXPORT_FORMATS=xlsx, csv ,pdf
REPORT_STATIC_VALUES=true
REPORT_WORKERS=8
CURRICULUM=general-2024
DASHBOARD_TOP_N=3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
	assert.Equal(t, []string{"xlsx", "csv", "pdf"}, cfg.Report.Formats)
	assert.True(t, cfg.Report.StaticValues)
	assert.Equal(t, 8, cfg.Report.Workers)
	assert.Equal(t, "general-2024", cfg.Curriculum.Revision)
	assert.Equal(t, 3, cfg.Dashboard.TopN)
}

func TestLoadClampsWorkerCounts(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("REPORT_WORKERS=0\nDASHBOARD_TOP_N=-2\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Report.Workers)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
}
