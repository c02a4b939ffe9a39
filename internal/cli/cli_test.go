package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := rootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func generateWorkbook(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	out, err := runCommand(t, "generate", "-o", dir, "-f", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary:")
	assert.Contains(t, out, "Total Students: 20")

	files, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0]
}

func TestGenerateCommand(t *testing.T) {
	path := generateWorkbook(t)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateCommandAllFormats(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "generate", "-o", dir, "-f", "xlsx,csv,pdf", "--static", "--top", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved:")

	for _, ext := range []string{"*.xlsx", "*.csv", "*.pdf"} {
		files, err := filepath.Glob(filepath.Join(dir, ext))
		require.NoError(t, err)
		assert.Len(t, files, 1, ext)
	}
}

func TestGenerateCommandGeneralRevision(t *testing.T) {
	dir := t.TempDir()
	out, err := runCommand(t, "generate", "--curriculum", "general-2024", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Students: 20")
}

func TestGenerateCommandUnknownRevision(t *testing.T) {
	_, err := runCommand(t, "generate", "--curriculum", "dakhil-1800", "-o", t.TempDir())
	require.Error(t, err)
}

func TestInspectValuesCommand(t *testing.T) {
	path := generateWorkbook(t)

	out, err := runCommand(t, "inspect", "values", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ahmed Rahman")
	assert.Contains(t, out, "Grade=")
}

func TestInspectFormulasCommand(t *testing.T) {
	path := generateWorkbook(t)

	out, err := runCommand(t, "inspect", "formulas", path, "--row", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "GPA formula:")
	assert.Contains(t, out, "Raw marks:")
}

func TestInspectLengthCommand(t *testing.T) {
	path := generateWorkbook(t)

	out, err := runCommand(t, "inspect", "length", path)
	require.NoError(t, err)
	assert.Contains(t, out, "formula limit")
}

func TestFailcheckCommand(t *testing.T) {
	path := generateWorkbook(t)

	// Sample row 10 (Tarik Hasan) fails Bangla, Mathematics and ICT.
	out, err := runCommand(t, "failcheck", path, "--row", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Tarik Hasan")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "grade F")
}
