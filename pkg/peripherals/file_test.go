package peripherals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hardcoreai/shell/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peripherals.json")

	want := fullConfig()
	require.NoError(t, SaveFile(path, want))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peripherals.json")

	// "mode" is constrained to the pin mode enum.
	bad := `{"gpio":[{"pin":2,"mode":"SIDEWAYS"}],"i2c":[],"spi":[],"uart":[],"timers":[],"clock":{}}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSchemaValidation, errors.GetCode(err))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
