package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// openInput opens a local file, or downloads the body when the source is an
// http(s) URL. Remote catalogs are always fetched fresh, never cached.
func openInput(source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("downloading %s: %w", source, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("downloading %s: unexpected status %s", source, resp.Status)
		}
		return resp.Body, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	return f, nil
}
