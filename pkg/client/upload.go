package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
)

const DefaultFileField = "file"

// File is one part of a multipart upload.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Upload posts file under field, followed by the extra form fields, as
// multipart/form-data. It resolves like Post.
func (c *Client) Upload(ctx context.Context, path string, file File, field string, extra map[string]string, out any, opts ...RequestOption) error {
	if file.Reader == nil {
		return fmt.Errorf("upload %s: file reader is required", path)
	}
	if field == "" {
		field = DefaultFileField
	}

	body, contentType, err := buildMultipart(file, field, extra)
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}

	return c.call(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: contentType,
	}, out, opts)
}

func buildMultipart(file File, field string, extra map[string]string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	name := file.Name
	if name == "" {
		name = "blob"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(field), escapeQuotes(name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, extra[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
