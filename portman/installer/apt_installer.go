package installer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	cm "github.com/portmanops/portman/portman/commandmanager"
)

// AptInstaller delegates installs to the apt tooling portman sits on
// top of.
type AptInstaller struct {
	CommandManager cm.CommandManager
	Log            *logrus.Logger
}

func (a *AptInstaller) Install(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	if a.Log != nil {
		a.Log.WithField("packages", names).Info("installing packages")
	}

	args := []string{"install", "-y", "-o", "Dpkg::Options::=--force-confdef", "-o", "Dpkg::Options::=--force-confold"}
	args = append(args, names...)

	result, err := a.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apt-get",
		Sudo:    true,
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Args:    args,
	})
	if err != nil {
		return fmt.Errorf("apt-get install failed (exit %d): %w", result.ExitCode, err)
	}
	return nil
}

func (a *AptInstaller) RefreshIndex(ctx context.Context) error {
	result, err := a.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apt-get",
		Sudo:    true,
		Args:    []string{"update"},
	})
	if err != nil {
		return fmt.Errorf("apt-get update failed (exit %d): %w", result.ExitCode, err)
	}
	return nil
}
