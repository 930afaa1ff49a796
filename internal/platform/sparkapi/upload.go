package sparkapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

const uploadField = "file"

// UploadFile posts a local file as multipart form data to /upload.
func (c *Client) UploadFile(ctx context.Context, path string) Result[UploadPayload] {
	f, err := os.Open(path)
	if err != nil {
		return Result[UploadPayload]{Error: fmt.Sprintf("open upload: %v", err)}
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)
	part, err := form.CreateFormFile(uploadField, filepath.Base(path))
	if err != nil {
		return Result[UploadPayload]{Error: fmt.Sprintf("build upload: %v", err)}
	}
	if _, err := io.Copy(part, f); err != nil {
		return Result[UploadPayload]{Error: fmt.Sprintf("read upload: %v", err)}
	}
	if err := form.Close(); err != nil {
		return Result[UploadPayload]{Error: fmt.Sprintf("finish upload: %v", err)}
	}
	return call[UploadPayload](ctx, c, http.MethodPost, "/upload", buf, form.FormDataContentType())
}
