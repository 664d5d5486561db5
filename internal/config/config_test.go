package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Name:        "demo",
		Created:     "2024-01-01",
		Author:      "Ada Lovelace",
		Email:       "ada@example.org",
		Description: "ATAC-seq pilot",
		Settings:    Settings{InitGit: true, AllowDangling: false},
		Links:       Links{Work: "/scratch/demo/work", Data: "/scratch/demo/data"},
		Analyses: []Analysis{
			{Name: "peaks", Created: "2024-01-01", Dir: "2024-01-01_peaks"},
		},
		Datasets: []Data{
			{Name: "fastq", Created: "2024-01-02", Dir: "2024-01-02_fastq", Frozen: true},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := sampleConfig()

	require.NoError(t, Save(root, cfg))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Save(root, sampleConfig()))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ConfigFile, entries[0].Name())
}

func TestSaveOverwritesAtomically(t *testing.T) {
	root := t.TempDir()
	cfg := sampleConfig()
	require.NoError(t, Save(root, cfg))

	cfg.Analyses = append(cfg.Analyses, Analysis{
		Name: "tracks", Created: "2024-02-01", Dir: "2024-02-01_tracks",
	})
	require.NoError(t, Save(root, cfg))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Len(t, loaded.Analyses, 2)
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptConfig(t *testing.T) {
	cases := map[string]string{
		"invalid toml":   "name = \"demo\"\n[[[broken",
		"unknown key":    "name = \"demo\"\ncolor = \"red\"\n",
		"missing name":   "version = \"1\"\n",
		"duplicate name": "name = \"demo\"\n[[analysis]]\nname = \"x\"\ncreated = \"2024-01-01\"\ndir = \"2024-01-01_x\"\n[[data]]\nname = \"x\"\ncreated = \"2024-01-01\"\ndir = \"2024-01-01_x\"\n",
		"empty dir":      "name = \"demo\"\n[[analysis]]\nname = \"x\"\ncreated = \"2024-01-01\"\ndir = \"\"\n",
	}

	for label, body := range cases {
		t.Run(strings.ReplaceAll(label, " ", "_"), func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte(body), 0o644))

			_, err := Load(root)
			assert.ErrorIs(t, err, ErrCorruptConfig)
		})
	}
}

func TestLoadMigratesMissingVersion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte("name = \"demo\"\n"), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
}

func TestLookupHelpers(t *testing.T) {
	cfg := sampleConfig()

	require.NotNil(t, cfg.FindAnalysis("peaks"))
	assert.Nil(t, cfg.FindAnalysis("fastq"))
	require.NotNil(t, cfg.FindData("fastq"))
	assert.Nil(t, cfg.FindData("peaks"))

	assert.True(t, cfg.HasName("peaks"))
	assert.True(t, cfg.HasName("fastq"))
	assert.False(t, cfg.HasName("tracks"))

	// FindAnalysis returns a pointer into the list, so edits stick.
	cfg.FindAnalysis("peaks").Frozen = true
	assert.True(t, cfg.Analyses[0].Frozen)
}
