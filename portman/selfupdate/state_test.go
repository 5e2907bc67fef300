package selfupdate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampSetAndClear(t *testing.T) {
	state := StrategyState{StateDir: t.TempDir(), Method: MethodRsync}

	assert.False(t, state.Stamped())
	require.NoError(t, state.StampSet())
	assert.True(t, state.Stamped())

	require.NoError(t, state.StampClear())
	assert.False(t, state.Stamped())
}

func TestStampClearIsIdempotent(t *testing.T) {
	state := StrategyState{StateDir: t.TempDir(), Method: MethodCvs}

	require.NoError(t, state.StampClear())
	require.NoError(t, state.StampClear())
}

func TestClearMetadataRemovesWorkingArea(t *testing.T) {
	state := StrategyState{StateDir: t.TempDir(), Method: MethodPoint}
	require.NoError(t, os.MkdirAll(state.MetadataDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(state.MetadataDir(), "cache"), []byte("x"), 0o644))

	require.NoError(t, state.ClearMetadata())

	_, err := os.Stat(state.MetadataDir())
	assert.True(t, os.IsNotExist(err))
}

func TestStampSetCreatesStateDir(t *testing.T) {
	state := StrategyState{StateDir: filepath.Join(t.TempDir(), "nested", "state"), Method: MethodRsync}

	require.NoError(t, state.StampSet())
	assert.True(t, state.Stamped())
}
