// Package attachment converts uploaded files into inline data-URL
// attachments. All selected files are read before a single batched result
// is returned, so attachment order follows selection order, not read
// completion order.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"dental-center-management/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

const fallbackContentType = "application/octet-stream"

// ReadAll reads every uploaded file fully and returns one attachment per
// file, in the order the files were submitted. Reads do not support
// cancellation; callers that lose interest simply discard the result.
func ReadAll(headers []*multipart.FileHeader) ([]entity.FileAttachment, error) {
	out := make([]entity.FileAttachment, len(headers))

	var g errgroup.Group
	for i, header := range headers {
		i, header := i, header
		g.Go(func() error {
			att, err := read(header)
			if err != nil {
				return fmt.Errorf("read %q: %w", header.Filename, err)
			}
			out[i] = att
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func read(header *multipart.FileHeader) (entity.FileAttachment, error) {
	file, err := header.Open()
	if err != nil {
		return entity.FileAttachment{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return entity.FileAttachment{}, err
	}

	return entity.FileAttachment{
		Name: header.Filename,
		URL:  DataURL(contentType(header), content),
	}, nil
}

// DataURL embeds content as a base64 data URL.
func DataURL(contentType string, content []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(filepath.Ext(header.Filename)); ct != "" {
		return ct
	}
	return fallbackContentType
}
