package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const DefaultDownloadName = "download"

// Saver persists a downloaded payload under name and returns where it went.
type Saver interface {
	Save(name string, r io.Reader) (string, error)
}

// FileSaver writes downloads into Dir through a temporary file that is
// renamed into place once complete.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Save(name string, r io.Reader) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = DefaultDownloadName
	}
	final := filepath.Join(dir, base)

	tmp, err := os.CreateTemp(dir, "."+base+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", base, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", base, err)
	}
	return final, nil
}

// Download fetches a binary payload and hands it to the Saver. It resolves
// to true once the payload is saved. A JSON body is still checked for a
// failing envelope so an error is never saved as the file.
func (c *Client) Download(ctx context.Context, path string, query url.Values, filename string, opts ...RequestOption) (bool, error) {
	if filename == "" {
		filename = DefaultDownloadName
	}

	opts = append([]RequestOption{WithHeader("Accept", "*/*")}, opts...)
	resp, body, err := c.exchange(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, opts)
	if err != nil {
		return false, err
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		out := Classify(Discriminate(body))
		c.apply(out)
		if out.Failed() {
			return false, out.Err(nil)
		}
	}

	saved, err := c.saver.Save(filename, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to save download", "file", filename, "error", err)
		return false, fmt.Errorf("download %s: %w", path, err)
	}

	c.logger.Info("Download saved", "file", saved, "bytes", len(body))
	return true, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}
