package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	cm "github.com/portmanops/portman/portman/commandmanager"
)

// RsyncStrategy synchronizes the description collection from an rsync
// mirror straight into the collection directory.
type RsyncStrategy struct {
	State          StrategyState
	CommandManager cm.CommandManager
	Mirror         string
	DescDir        string
	Log            *logrus.Logger
}

func (r *RsyncStrategy) SystemCheck(ctx context.Context) error {
	if r.Mirror == "" {
		return errors.New("no rsync mirror configured (RsyncMirror)")
	}
	if _, err := r.CommandManager.LookPath("rsync"); err != nil {
		return fmt.Errorf("rsync is not installed: %w", err)
	}
	return nil
}

func (r *RsyncStrategy) DoDirect(ctx context.Context) error {
	if err := os.MkdirAll(r.DescDir, 0o755); err != nil {
		return fmt.Errorf("preparing collection directory: %w", err)
	}

	result, err := r.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "rsync",
		Args:    []string{"-rtz", "--delete", "--exclude=CVS", r.Mirror + "/", r.DescDir + "/"},
	})
	if err != nil {
		return fmt.Errorf("rsync from %s failed: %s: %w", r.Mirror, strings.TrimSpace(result.STDERR), err)
	}

	if r.Log != nil {
		r.Log.WithField("mirror", r.Mirror).Info("collection synchronized via rsync")
	}
	return nil
}

func (r *RsyncStrategy) StampSet() error      { return r.State.StampSet() }
func (r *RsyncStrategy) StampClear() error    { return r.State.StampClear() }
func (r *RsyncStrategy) ClearMetadata() error { return r.State.ClearMetadata() }
