package commandmanager

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// LocalCommandManager runs commands on the machine portman manages.
type LocalCommandManager struct {
	Log *logrus.Logger
}

func (l *LocalCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	if config.Sudo && os.Geteuid() != 0 {
		cmdArgs := append([]string{"sudo", config.Command}, config.Args...)
		cmd = exec.CommandContext(ctx, cmdArgs[0], cmdArgs[1:]...)
	}
	if config.Dir != "" {
		cmd.Dir = config.Dir
	}
	if len(config.Env) > 0 {
		cmd.Env = append(os.Environ(), config.Env...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Command:   config.Command,
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if l.Log != nil {
		l.Log.WithFields(logrus.Fields{
			"command":  config.Command,
			"args":     strings.Join(config.Args, " "),
			"exitCode": result.ExitCode,
			"duration": result.Duration,
		}).Debug("command finished")
	}

	return result, err
}

func (l *LocalCommandManager) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func getExitCode(err error) int {
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			status := exitError.Sys().(syscall.WaitStatus)
			return status.ExitStatus()
		}
	}
	return 0
}
