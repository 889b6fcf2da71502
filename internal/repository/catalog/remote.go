package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// DefaultRemoteTimeout bounds one catalog fetch from the marketplace API.
const DefaultRemoteTimeout = 10 * time.Second

const maxRemoteBody = 32 << 20

// Remote fetches listings from the marketplace API at {baseURL}/products/.
type Remote struct {
	url    string
	client *http.Client
}

// NewRemote creates a remote source. A zero timeout uses DefaultRemoteTimeout.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &Remote{
		url:    strings.TrimRight(baseURL, "/") + "/products/",
		client: &http.Client{Timeout: timeout},
	}
}

// Name identifies the source in logs and metrics.
func (r *Remote) Name() string { return "remote" }

// Items performs one GET and decodes the array or paginated response.
func (r *Remote) Items(ctx context.Context) ([]item.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", r.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", r.url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.url, err)
	}
	items, err := decodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", r.url, err)
	}
	return items, nil
}
