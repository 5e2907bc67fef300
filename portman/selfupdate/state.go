package selfupdate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StrategyState owns the on-disk stamp and cached metadata of a single
// strategy. Each strategy embeds one; nothing else touches these
// paths.
type StrategyState struct {
	StateDir string
	Method   Method
}

func (s StrategyState) stampPath() string {
	return filepath.Join(s.StateDir, string(s.Method)+".stamp")
}

// MetadataDir is the strategy's private working area.
func (s StrategyState) MetadataDir() string {
	return filepath.Join(s.StateDir, string(s.Method))
}

// StampSet records that this strategy's view of the collection is
// current.
func (s StrategyState) StampSet() error {
	if err := os.MkdirAll(s.StateDir, 0o755); err != nil {
		return fmt.Errorf("setting %s stamp: %w", s.Method, err)
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(s.stampPath(), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("setting %s stamp: %w", s.Method, err)
	}
	return nil
}

func (s StrategyState) StampClear() error {
	if err := os.Remove(s.stampPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing %s stamp: %w", s.Method, err)
	}
	return nil
}

func (s StrategyState) ClearMetadata() error {
	if err := os.RemoveAll(s.MetadataDir()); err != nil {
		return fmt.Errorf("clearing %s metadata: %w", s.Method, err)
	}
	return nil
}

// Stamped reports whether the stamp is present.
func (s StrategyState) Stamped() bool {
	_, err := os.Stat(s.stampPath())
	return err == nil
}
