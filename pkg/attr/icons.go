package attr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // icon origin serves PNGs
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// IconCache resolves a display id to its icon image, memoized on disk with a
// network fallback. Icons are assumed immutable once published, so entries
// have no expiry; a cached file is only re-fetched after a decode failure.
//
// The on-disk layout is a flat directory of "<id>.png" files, including the
// sentinel ids 999 and 1000. Concurrent fetches of the same id may race and
// redundantly download; both writers produce identical bytes, so the race is
// wasteful but safe.
type IconCache struct {
	dir     string
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewIconCache creates an icon cache rooted at dir, fetching misses from the
// icon origin at baseURL. The directory is created if absent. A nil client
// falls back to http.DefaultClient, a nil logger to log.Default().
func NewIconCache(dir, baseURL string, client *http.Client, logger *log.Logger) (*IconCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create icon cache dir: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &IconCache{dir: dir, baseURL: baseURL, client: client, logger: logger}, nil
}

// Dir returns the icon cache directory.
func (c *IconCache) Dir() string { return c.dir }

// URL resolves a display id to its icon origin URL. The sentinel ids map to
// the unified family icons regardless of their numeric value; real ids pick
// the per-family template.
func (c *IconCache) URL(id int) string {
	switch {
	case id == SuperFamilyID:
		return fmt.Sprintf("%s/attribute%d.png", c.baseURL, SuperFamilyID)
	case id == OriginFamilyID:
		return fmt.Sprintf("%s/attribute%d.png", c.baseURL, OriginFamilyID)
	case IsSuper(id):
		return fmt.Sprintf("%s/oldattribute%d.png", c.baseURL, id)
	default:
		return fmt.Sprintf("%s/attribute%d.png", c.baseURL, id)
	}
}

// Image returns the decoded icon for id. Misses are fetched from the icon
// origin and persisted; corrupt cache files are deleted and re-fetched once.
// Any fetch or decode failure returns an error the caller should treat as
// "render without an icon", never as fatal.
func (c *IconCache) Image(ctx context.Context, id int) (image.Image, error) {
	path := filepath.Join(c.dir, fmt.Sprintf("%d.png", id))

	if data, err := os.ReadFile(path); err == nil {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return img, nil
		}
		c.logger.Debug("corrupt cached icon, refetching", "id", id, "err", err)
		_ = os.Remove(path)
	}

	data, err := c.fetch(ctx, id)
	if err != nil {
		c.logger.Debug("icon fetch failed", "id", id, "err", err)
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.logger.Debug("icon cache write failed", "id", id, "err", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode icon %d: %w", id, err)
	}
	return img, nil
}

func (c *IconCache) fetch(ctx context.Context, id int) ([]byte, error) {
	url := c.URL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch icon %d: status %d from %s", id, resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
