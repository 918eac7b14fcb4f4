// SPDX-License-Identifier: EPL-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// fetch reads the bytes behind locator. With limit > 0 at most limit+1 bytes
// are read so the caller can tell whether the source was longer.
func (r *Resolver) fetch(ctx context.Context, locator string, limit int64) ([]byte, error) {
	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return r.fetchHTTP(ctx, locator, limit)
	case strings.HasPrefix(locator, "file://"):
		u, err := url.Parse(locator)
		if err != nil {
			return nil, &FetchError{Locator: locator, Err: err}
		}
		return readFile(locator, filepath.FromSlash(u.Path), limit)
	case strings.HasPrefix(locator, "blob:"):
		p, err := r.blobPath(locator)
		if err != nil {
			return nil, &FetchError{Locator: locator, Err: err}
		}
		return readFile(locator, p, limit)
	default:
		return readFile(locator, r.localPath(locator), limit)
	}
}

func (r *Resolver) fetchHTTP(ctx context.Context, locator string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Locator: locator, Err: &StatusError{Code: resp.StatusCode}}
	}

	data, err := readLimited(resp.Body, limit)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}
	return data, nil
}

// blobPath maps a blob reference to a file in the blob directory. Only the
// last path element of the reference is used.
func (r *Resolver) blobPath(locator string) (string, error) {
	if r.blobDir == "" {
		return "", fmt.Errorf("%w: no blob directory configured", ErrUnsupportedLocator)
	}

	id := path.Base(strings.TrimPrefix(locator, "blob:"))
	if id == "." || id == "/" || id == ".." || id == "" {
		return "", fmt.Errorf("%w: malformed blob reference", ErrUnsupportedLocator)
	}

	return filepath.Join(r.blobDir, id), nil
}

// localPath resolves relative paths against the folder hint.
func (r *Resolver) localPath(p string) string {
	if r.folderHint == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.folderHint, p)
}

func readFile(locator, p string, limit int64) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}
	defer f.Close()

	data, err := readLimited(f, limit)
	if err != nil {
		return nil, &FetchError{Locator: locator, Err: err}
	}
	return data, nil
}

func readLimited(rd io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		rd = io.LimitReader(rd, limit+1)
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}
