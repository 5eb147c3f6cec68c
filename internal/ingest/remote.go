package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteFetcher downloads spreadsheet exports served over HTTP by the POS
// vendor's backoffice.
type RemoteFetcher struct {
	httpClient *resty.Client
}

// NewRemoteFetcher builds the download client. An empty token skips the
// Authorization header.
func NewRemoteFetcher(token string) *RemoteFetcher {
	client := resty.New().SetTimeout(30 * time.Second)
	if token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return &RemoteFetcher{httpClient: client}
}

// Fetch downloads the export at url and returns its raw bytes.
func (f *RemoteFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download export %s: %w", url, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("download export %s: status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
