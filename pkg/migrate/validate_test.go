package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0001_bad.sql", "-- +goose Up\n-- +goose Down\n")
	err := ValidateDir(dir)
	require.ErrorContains(t, err, "invalid migration filename")
}

func TestValidateDirRejectsMissingDown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20250901000001_only_up.sql", "-- +goose Up\nSELECT 1;\n")
	err := ValidateDir(dir)
	require.ErrorContains(t, err, "missing \"-- +goose Down\"")
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0001_bad.sql", "-- +goose Up\n-- +goose Down\n")
	writeFile(t, dir, "20250901000001_only_up.sql", "-- +goose Up\nSELECT 1;\n")
	writeFile(t, dir, "20250901000002_only_down.sql", "-- +goose Down\nSELECT 1;\n")

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 3)
}
