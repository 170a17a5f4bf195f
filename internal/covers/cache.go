package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// maxCoverBytes caps the size of a downloaded cover.
const maxCoverBytes = 10 << 20

// ErrNotImage is returned when a cover URL serves something other than an image.
var ErrNotImage = errors.New("cover URL did not return an image")

// Cache keeps book cover images on local disk, keyed by book id and URL.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
	inflight   singleflight.Group
}

// NewCache creates a new cover cache at the specified directory.
func NewCache(cacheDir string, timeout time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GetCover returns the path of the cached cover for a book, downloading it
// first when absent. An empty coverURL yields an empty path. Concurrent
// requests for the same cover share one download.
func (c *Cache) GetCover(ctx context.Context, bookID uint, coverURL string) (string, error) {
	if coverURL == "" {
		return "", nil
	}

	filename := c.coverFilename(bookID, coverURL)
	cachePath := filepath.Join(c.cacheDir, filename)

	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	_, err, _ := c.inflight.Do(filename, func() (any, error) {
		return nil, c.fetchAndCache(ctx, coverURL, cachePath)
	})
	if err != nil {
		return "", err
	}

	return cachePath, nil
}

// InvalidateCover removes every cached cover of a book.
func (c *Cache) InvalidateCover(bookID uint) error {
	pattern := filepath.Join(c.cacheDir, fmt.Sprintf("cover_%d_*", bookID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// coverFilename generates a unique filename based on book ID and URL hash.
func (c *Cache) coverFilename(bookID uint, coverURL string) string {
	hash := sha256.Sum256([]byte(coverURL))
	return fmt.Sprintf("cover_%d_%x.jpg", bookID, hash[:8])
}

func (c *Cache) fetchAndCache(ctx context.Context, url, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Bookshelf/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("%w: %s", ErrNotImage, ct)
	}

	// Write to a temp file in the same directory, then rename into place
	tmpFile, err := os.CreateTemp(c.cacheDir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, io.LimitReader(resp.Body, maxCoverBytes)); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, cachePath)
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}
