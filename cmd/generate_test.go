package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hardcoreai/shell/pkg/models"
	"github.com/hardcoreai/shell/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWorkspace points the command at a fake backend via a project
// config in an isolated working directory.
func setupWorkspace(t *testing.T, backendURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)

	cfg := fmt.Sprintf("backend:\n  url: %s\nworkspace:\n  dir: %s\n", backendURL, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hardcore.yml"), []byte(cfg), 0o644))
	return dir
}

func TestGenerateCodeReplyWithoutFirmwareWritesNothing(t *testing.T) {
	backend := testutil.NewFakeBackend()
	defer backend.Close()
	backend.ChatResponse = models.ChatResponse{
		Status:       models.StatusSuccess,
		ResponseType: models.ResponseTypeCode,
		Message:      "I need to know which sensor you have.",
	}

	dir := setupWorkspace(t, backend.URL())

	cmd := NewGenerateCmd()
	cmd.SetArgs([]string{"read the sensor"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dir, "main.cpp"))
	assert.True(t, os.IsNotExist(err), "no firmware file should be written for an empty firmware reply")
}

func TestGenerateCodeReplyWritesFirmware(t *testing.T) {
	backend := testutil.NewFakeBackend()
	defer backend.Close()

	dir := setupWorkspace(t, backend.URL())

	cmd := NewGenerateCmd()
	cmd.SetArgs([]string{"blink an LED"})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(filepath.Join(dir, "main.cpp"))
	require.NoError(t, err)
	assert.Equal(t, backend.ChatResponse.Firmware, string(content))
}
