// Package assets resolves Data Dragon images to local file paths.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DataDragonVersion pins the CDN version the downloader pulls from.
const DataDragonVersion = "15.15.1"

// Resolver maps remote image references to local file paths.
type Resolver interface {
	// ProfileIconPath returns the local path for a profile icon, downloading
	// it once if missing. An empty path with nil error means the asset could
	// not be fetched; the dashboard renders without it.
	ProfileIconPath(ctx context.Context, iconID int) (string, error)
}

// Downloader fetches assets from the Data Dragon CDN into a local data dir.
type Downloader struct {
	httpClient *http.Client
	baseURL    string
	dataDir    string
}

// NewDownloader creates a Downloader storing assets under dataDir.
func NewDownloader(dataDir string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img", DataDragonVersion),
		dataDir:    dataDir,
	}
}

var _ Resolver = (*Downloader)(nil)

func (d *Downloader) ProfileIconPath(ctx context.Context, iconID int) (string, error) {
	localPath := filepath.Join(d.dataDir, "profile_icons", fmt.Sprintf("%d.png", iconID))
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}

	url := fmt.Sprintf("%s/profileicon/%d.png", d.baseURL, iconID)
	if err := d.download(ctx, url, localPath); err != nil {
		// Missing art never blocks a refresh.
		log.Warn("Failed to download profile icon", "iconID", iconID, "error", err)
		return "", nil
	}
	return localPath, nil
}

func (d *Downloader) download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create asset dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("asset fetch returned status %d for %s", resp.StatusCode, url)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write asset: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

// MockResolver is a Resolver stub for tests.
type MockResolver struct {
	ProfileIconPathFunc  func(iconID int) (string, error)
	ProfileIconPathCalls int
}

var _ Resolver = (*MockResolver)(nil)

func (m *MockResolver) ProfileIconPath(_ context.Context, iconID int) (string, error) {
	m.ProfileIconPathCalls++
	if m.ProfileIconPathFunc != nil {
		return m.ProfileIconPathFunc(iconID)
	}
	return fmt.Sprintf("/tmp/profile_icons/%d.png", iconID), nil
}
