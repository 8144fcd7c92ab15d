package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/grant-scout/internal/types"
)

func TestDiscoverCommand_MissingDataset(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "discover", "--profile", "profile.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--dataset is required")
}

func TestDiscoverCommand_MissingProfile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	datasetPath := filepath.Join(tmpDir, "bmf.csv")
	require.NoError(t, os.WriteFile(datasetPath, []byte("EIN,NAME\n541234567,Test Org\n"), 0644))

	cmd := exec.Command(binaryPath, "discover", "--dataset", datasetPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--profile is required")
}

func TestDiscoverCommand_InvalidStage(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	datasetPath := filepath.Join(tmpDir, "bmf.csv")
	require.NoError(t, os.WriteFile(datasetPath,
		[]byte("EIN,NAME,STATE\n541234567,Test Org,VA\n"), 0644))

	profilePath := filepath.Join(tmpDir, "profile.json")
	require.NoError(t, os.WriteFile(profilePath,
		[]byte(`{"id":"p1","name":"Test","mission":"education access"}`), 0644))

	cmd := exec.Command(binaryPath, "discover",
		"--dataset", datasetPath,
		"--profile", profilePath,
		"--stage", "negotiate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "stage")
}

func TestDiscoverDefaults(t *testing.T) {
	defaults := discoverDefaults()

	assert.True(t, types.Stage(defaults.Stage).Valid(),
		"default stage must be one of the cultivation stages")
	assert.Equal(t, string(types.StageDiscover), defaults.Stage)
	assert.Equal(t, 120, defaults.TimeoutSeconds)
}

func TestWriteJSON(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "nested", "out.json")

	err := writeJSON(outPath, map[string]int{"scored": 3})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded["scored"])
}
