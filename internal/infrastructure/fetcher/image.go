package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ImageDownloader fetches candidate product images with a hard size cap.
// Downloaded bytes live only for the duration of one request.
type ImageDownloader struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	logger     zerolog.Logger
}

// NewImageDownloader creates an image downloader with the given size cap
func NewImageDownloader(timeout time.Duration, userAgent string, maxBytes int64, logger zerolog.Logger) *ImageDownloader {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &ImageDownloader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		logger:    logger.With().Str("component", "downloader").Logger(),
	}
}

// Download fetches the image at the URL. Oversized responses and non-200
// statuses are errors; the caller decides whether to try the next candidate.
func (d *ImageDownloader) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download status %d", resp.StatusCode)
	}

	// Read one byte past the cap to detect oversize without trusting
	// Content-Length.
	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("image read failed: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("image exceeds size cap of %d bytes", d.maxBytes)
	}

	d.logger.Debug().Str("url", imageURL).Int("bytes", len(data)).Msg("image downloaded")
	return data, nil
}
