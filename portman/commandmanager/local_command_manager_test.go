package commandmanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	manager := &LocalCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command: "echo",
		Args:    []string{"hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.STDOUT)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "echo", result.Command)
}

func TestRunReportsExitCode(t *testing.T) {
	manager := &LocalCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	})

	assert.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestRunHonorsDir(t *testing.T) {
	dir := t.TempDir()
	manager := &LocalCommandManager{}

	result, err := manager.Run(context.Background(), CommandConfig{
		Command: "pwd",
		Dir:     dir,
	})

	require.NoError(t, err)
	assert.Contains(t, result.STDOUT, dir)
}

func TestLookPath(t *testing.T) {
	manager := &LocalCommandManager{}

	_, err := manager.LookPath("sh")
	assert.NoError(t, err)

	_, err = manager.LookPath("definitely-not-a-real-tool")
	assert.Error(t, err)
}
