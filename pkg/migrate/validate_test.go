package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.Error(t, ValidateDir(dir))
}

func TestValidateRejectsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "20250101000000_only_up.sql"),
		[]byte("-- +goose Up\nSELECT 1;\n"), 0o644))
	err := ValidateDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "+goose Down")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Promo Codes!")
	require.NoError(t, err)
	require.Contains(t, filepath.Base(path), "_add_promo_codes.sql")
	require.NoError(t, ValidateDir(dir))
}
