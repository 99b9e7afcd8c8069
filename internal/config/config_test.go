package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Flag(FlagAppendFlavourSlash))
	assert.False(t, cfg.Flag("does_not_exist"))
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "blockslash.toml")
	svc := NewConfigServiceForPath(path)

	cfg := DefaultConfig()
	cfg.Editor.Title = "Notes"
	cfg.Editor.IDGenerator = IDGeneratorUUID
	cfg.Flags[FlagAppendFlavourSlash] = false
	cfg.Palette.Prefer = PlaceAbove
	cfg.Palette.Entries = []EntrySetting{
		{Name: "Text", Icon: "T", Flavour: "paragraph", Type: "text"},
		{Name: "Code Block", Icon: "<>", Flavour: "code"},
	}
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[[palette.entries]]")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "Notes", loaded.Editor.Title)
	assert.Equal(t, IDGeneratorUUID, loaded.Editor.IDGenerator)
	assert.False(t, loaded.Flag(FlagAppendFlavourSlash))
	assert.Equal(t, PlaceAbove, loaded.Palette.Prefer)
	assert.Equal(t, cfg.Palette.Entries, loaded.Palette.Entries)
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockslash.yaml")
	svc := NewConfigServiceForPath(path)

	cfg := DefaultConfig()
	cfg.Palette.MaxHeight = 4
	require.NoError(t, svc.SaveToPath(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_height: 4")

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Palette.MaxHeight)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	svc := NewConfigServiceForPath(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	svc := NewConfigServiceForPath("unused")
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "unknown generator",
			content: "version = 1\n[editor]\nid_generator = \"sequential\"\n",
			wantErr: ErrUnknownIDGenerator,
		},
		{
			name:    "unknown placement",
			content: "version = 1\n[palette]\nprefer = \"left\"\n",
			wantErr: ErrUnknownPlacement,
		},
		{
			name:    "entry without flavour",
			content: "version = 1\n[[palette.entries]]\nname = \"Text\"\n",
			wantErr: ErrInvalidEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "blockslash.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewConfigServiceForPath(path).Load()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockslash.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = = 1"), 0644))

	_, err := NewConfigServiceForPath(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
