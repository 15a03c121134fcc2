package latex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var pngSignature = []byte("\x89PNG")

// Downloader fetches rendered LaTeX images.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader with a sensible timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads image data from a render URL. It rejects responses
// that are not PNG data, which is what CodeCogs returns on both
// success and render errors with a 200 status.
func (d *Downloader) Fetch(ctx context.Context, renderURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, renderURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("User-Agent", "prepdrill/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rendered image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render server returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read rendered image: %w", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("render server did not return PNG data")
	}
	return data, nil
}
