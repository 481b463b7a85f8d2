package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// FetchTimeout bounds a remote catalog download.
const FetchTimeout = 30 * time.Second

// maxDocumentSize caps remote documents at 32 MiB.
const maxDocumentSize = 32 << 20

// Fetch reads a document from a file path or an http(s) URL.
func Fetch(ctx context.Context, location string) (data []byte, err error) {
	parsedURL, urlErr := url.Parse(location)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, location)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch from URL: %s", location)
			return data, err
		}
		return data, err
	}

	data, err = fetchFromFile(location)
	return data, err
}

func fetchFromFile(path string) (data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = errors.Errorf("file is empty: %s", path)
		return data, err
	}
	return data, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}
	req.Header.Set("User-Agent", "talent-match/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	client := &http.Client{
		Timeout: FetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched document is empty")
		return data, err
	}
	return data, err
}
