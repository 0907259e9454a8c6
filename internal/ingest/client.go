package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadpulse/internal/utils"
)

// HTTPClient is the minimal client surface, swappable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// FetchCSV downloads a CSV source, retrying transient failures with
// exponential backoff. The caller owns closing the returned reader.
func FetchCSV(ctx context.Context, c HTTPClient, url string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := utils.NewBackoff(100*time.Millisecond, 2).Do(func(i int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			return fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
