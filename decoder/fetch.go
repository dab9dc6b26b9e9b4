// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// resolve turns path into a URL when it is remote or when a base URL is
// configured, and returns "" for local paths.
func resolve(path, baseURL string) (string, error) {
	if isRemote(path) {
		return path, nil
	}
	if baseURL == "" {
		return "", nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base url: %w", ErrOpen, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return base.ResolveReference(ref).String(), nil
}

func openLocal(path string) (io.ReadSeekCloser, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return f, nil
}

// fetch downloads the whole body; decoders for WAV and AIFF seek, so the
// stream has to be held in memory anyway.
func fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadSeekCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrOpen, rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrOpen, err)
	}

	return memFile{bytes.NewReader(data)}, nil
}
