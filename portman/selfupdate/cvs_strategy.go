package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	cm "github.com/portmanops/portman/portman/commandmanager"
)

// cvsModule is the name of the collection module in the repository.
const cvsModule = "collection"

// CvsStrategy keeps a CVS working copy of the collection in its
// metadata directory and publishes the descriptions from there.
type CvsStrategy struct {
	State          StrategyState
	CommandManager cm.CommandManager
	Root           string
	DescDir        string
	Log            *logrus.Logger
}

func (c *CvsStrategy) SystemCheck(ctx context.Context) error {
	if c.Root == "" {
		return errors.New("no CVS repository configured (CvsRoot)")
	}
	if _, err := c.CommandManager.LookPath("cvs"); err != nil {
		return fmt.Errorf("cvs is not installed: %w", err)
	}
	return nil
}

func (c *CvsStrategy) DoDirect(ctx context.Context) error {
	workingCopy := filepath.Join(c.State.MetadataDir(), cvsModule)

	var result cm.CommandResult
	var err error
	if _, statErr := os.Stat(filepath.Join(workingCopy, "CVS")); statErr == nil {
		result, err = c.CommandManager.Run(ctx, cm.CommandConfig{
			Command: "cvs",
			Args:    []string{"-q", "-d", c.Root, "update", "-d", "-P"},
			Dir:     workingCopy,
		})
	} else {
		if err := os.MkdirAll(c.State.MetadataDir(), 0o755); err != nil {
			return fmt.Errorf("preparing cvs working copy: %w", err)
		}
		result, err = c.CommandManager.Run(ctx, cm.CommandConfig{
			Command: "cvs",
			Args:    []string{"-q", "-d", c.Root, "checkout", "-d", cvsModule, cvsModule},
			Dir:     c.State.MetadataDir(),
		})
	}
	if err != nil {
		return fmt.Errorf("cvs sync from %s failed: %s: %w", c.Root, strings.TrimSpace(result.STDERR), err)
	}

	if err := publishDescriptions(ctx, c.CommandManager, workingCopy, c.DescDir); err != nil {
		return err
	}

	if c.Log != nil {
		c.Log.WithField("root", c.Root).Info("collection synchronized via cvs")
	}
	return nil
}

func (c *CvsStrategy) StampSet() error      { return c.State.StampSet() }
func (c *CvsStrategy) StampClear() error    { return c.State.StampClear() }
func (c *CvsStrategy) ClearMetadata() error { return c.State.ClearMetadata() }

// publishDescriptions copies a strategy's working tree into the shared
// collection directory.
func publishDescriptions(ctx context.Context, manager cm.CommandManager, src, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("preparing collection directory: %w", err)
	}
	result, err := manager.Run(ctx, cm.CommandConfig{
		Command: "cp",
		Args:    []string{"-R", src + "/.", dest},
	})
	if err != nil {
		return fmt.Errorf("publishing package descriptions: %s: %w", strings.TrimSpace(result.STDERR), err)
	}
	return nil
}
