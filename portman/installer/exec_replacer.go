package installer

import (
	"os"
	"syscall"
)

// ExecReplacer replaces the running process via execve.
type ExecReplacer struct{}

func (ExecReplacer) Replace(path string, args []string) error {
	return syscall.Exec(path, args, os.Environ())
}
