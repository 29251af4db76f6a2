// Package pricing implements clients for the AWS Price List Bulk API.
//
// Each client implements the filecache.Loadable capability: its cache key is
// derived from a cheap HEAD probe of the target document (the ETag becomes
// the content hash), and its load performs the full GET and decode. Placed
// behind a filecache.Cache, a document is re-downloaded only when its ETag
// changes or no fresh artifact exists.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tariffhound/tariffhound/filecache"
)

// DefaultBaseURL is the public endpoint of the Price List Bulk API.
const DefaultBaseURL = "https://pricing.us-east-1.amazonaws.com"

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// probeETag issues a HEAD request and returns a content fingerprint for the
// document: the ETag with surrounding quotes stripped when present, otherwise
// a fingerprint of Last-Modified and Content-Length, otherwise empty.
func probeETag(ctx context.Context, hc *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("build HEAD %s: %w", url, err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEAD %s: %w", url, err)
	}
	defer resp.Body.Close()

	if etag := strings.Trim(resp.Header.Get("ETag"), `"`); etag != "" {
		return etag, nil
	}

	lastModified := resp.Header.Get("Last-Modified")
	length := resp.Header.Get("Content-Length")
	if lastModified == "" && length == "" {
		return "", nil
	}
	return filecache.Fingerprint(lastModified, length), nil
}

// getJSON fetches the document at url and decodes it into T.
func getJSON[T any](ctx context.Context, hc *http.Client, url string) (T, error) {
	var out T

	logrus.WithField("url", url).Debug("requesting price list document")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, fmt.Errorf("build GET %s: %w", url, err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return out, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", url, err)
	}
	return out, nil
}

func normalizeClient(hc *http.Client) *http.Client {
	if hc == nil {
		return http.DefaultClient
	}
	return hc
}

func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}
