package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lociq/sdlsplit/internal/core/ports/driven"
)

func TestNewSettingsStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewSettingsStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestSettingsStore_SetAndGetString(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.SettingMergeMode, "overlay"))

	assert.Equal(t, "overlay", store.GetString(driven.SettingMergeMode))
	assert.Equal(t, "", store.GetString("nonexistent"))
}

func TestSettingsStore_GetInt(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("default_parts", 4))

	assert.Equal(t, 4, store.GetInt("default_parts"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("string_key", "not an int"))
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestSettingsStore_GetBool(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	assert.True(t, store.GetBool(driven.SettingPreserveGroups, true))
	assert.False(t, store.GetBool(driven.SettingPreserveGroups, false))

	require.NoError(t, store.Set(driven.SettingPreserveGroups, false))
	assert.False(t, store.GetBool(driven.SettingPreserveGroups, true))
}

// TestSettingsStore_Persistence reopens the store from the same
// directory; TOML integers come back as int64 and must still read.
func TestSettingsStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewSettingsStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.SettingMergeMode, "reconstruct"))
	require.NoError(t, store.Set(driven.SettingDuplicateContext, false))
	require.NoError(t, store.Set("default_parts", 3))

	reopened, err := NewSettingsStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "reconstruct", reopened.GetString(driven.SettingMergeMode))
	assert.False(t, reopened.GetBool(driven.SettingDuplicateContext, true))
	assert.Equal(t, 3, reopened.GetInt("default_parts"))
}

func TestSettingsStore_Overwrite(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.SettingPartNaming, "NofM"))
	require.NoError(t, store.Set(driven.SettingPartNaming, "partN"))
	assert.Equal(t, "partN", store.GetString(driven.SettingPartNaming))
}
