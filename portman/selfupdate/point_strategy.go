package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	cm "github.com/portmanops/portman/portman/commandmanager"
)

const pointArchiveName = "collection-latest.tar.gz"

var defaultHTTPClient = &http.Client{Timeout: 5 * time.Minute}

// PointStrategy fetches the latest point-release tarball of the
// collection, unpacks it in its metadata directory and publishes the
// result.
type PointStrategy struct {
	State          StrategyState
	CommandManager cm.CommandManager
	BaseURL        string
	DescDir        string
	Log            *logrus.Logger

	// HTTPClient is overridable in tests; defaultHTTPClient otherwise.
	HTTPClient *http.Client
}

func (p *PointStrategy) SystemCheck(ctx context.Context) error {
	if p.BaseURL == "" {
		return errors.New("no distribution URL configured (DistBaseURL)")
	}
	if _, err := p.CommandManager.LookPath("tar"); err != nil {
		return fmt.Errorf("tar is not installed: %w", err)
	}
	return nil
}

func (p *PointStrategy) DoDirect(ctx context.Context) error {
	archive, err := p.download(ctx)
	if err != nil {
		return err
	}

	unpacked := filepath.Join(p.State.MetadataDir(), "unpacked")
	if err := os.RemoveAll(unpacked); err != nil {
		return fmt.Errorf("preparing unpack directory: %w", err)
	}
	if err := os.MkdirAll(unpacked, 0o755); err != nil {
		return fmt.Errorf("preparing unpack directory: %w", err)
	}

	result, err := p.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "tar",
		Args:    []string{"-xzf", archive, "-C", unpacked, "--strip-components=1"},
	})
	if err != nil {
		return fmt.Errorf("unpacking %s failed: %s: %w", filepath.Base(archive), strings.TrimSpace(result.STDERR), err)
	}

	if err := publishDescriptions(ctx, p.CommandManager, unpacked, p.DescDir); err != nil {
		return err
	}

	if p.Log != nil {
		p.Log.WithField("baseURL", p.BaseURL).Info("collection synchronized from point release")
	}
	return nil
}

func (p *PointStrategy) StampSet() error      { return p.State.StampSet() }
func (p *PointStrategy) StampClear() error    { return p.State.StampClear() }
func (p *PointStrategy) ClearMetadata() error { return p.State.ClearMetadata() }

// download fetches the tarball into the metadata directory and returns
// its path.
func (p *PointStrategy) download(ctx context.Context) (string, error) {
	client := p.HTTPClient
	if client == nil {
		client = defaultHTTPClient
	}

	url := strings.TrimRight(p.BaseURL, "/") + "/" + pointArchiveName
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(p.State.MetadataDir(), 0o755); err != nil {
		return "", fmt.Errorf("preparing download directory: %w", err)
	}

	archive := filepath.Join(p.State.MetadataDir(), pointArchiveName)
	out, err := os.Create(archive)
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", archive, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", archive, err)
	}
	return archive, nil
}
