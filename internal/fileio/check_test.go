package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("timestamp,price\n"), 0o644))

	abs, err := ValidateInputFile(csvPath)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))

	upper := filepath.Join(dir, "PRICES.CSV")
	require.NoError(t, os.WriteFile(upper, []byte("timestamp,price\n"), 0o644))
	_, err = ValidateInputFile(upper)
	require.NoError(t, err, "extension check is case-insensitive")
}

func TestValidateInputFileMissing(t *testing.T) {
	_, err := ValidateInputFile(filepath.Join(t.TempDir(), "absent.csv"))
	var ife *InputFileError
	require.ErrorAs(t, err, &ife)
	require.Contains(t, ife.Reason, "not found")
}

func TestValidateInputFileDirectory(t *testing.T) {
	_, err := ValidateInputFile(t.TempDir())
	var ife *InputFileError
	require.ErrorAs(t, err, &ife)
}

func TestValidateInputFileWrongExtension(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "prices.xlsx")
	require.NoError(t, os.WriteFile(xlsx, []byte("not a csv"), 0o644))

	_, err := ValidateInputFile(xlsx)
	var ife *InputFileError
	require.ErrorAs(t, err, &ife)
	require.Contains(t, ife.Reason, "invalid file type")
}

func TestPrepareOutputPathCreatesParent(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "deeper", "results.csv")
	abs, err := PrepareOutputPath(out)
	require.NoError(t, err)
	require.DirExists(t, filepath.Dir(abs))
}

func TestPrepareOutputPathParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := PrepareOutputPath(filepath.Join(blocker, "results.csv"))
	var ope *OutputPathError
	require.ErrorAs(t, err, &ope)
}
