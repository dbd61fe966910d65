package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// ImageField is the multipart field the backend reads the image from.
const ImageField = "image"

// UploadResult is the body of a successful image upload. It is not wrapped
// in an Envelope.
type UploadResult struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// UploadImage posts the image read from r as multipart form data.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(ImageField, filepath.Base(filename))
	if err != nil {
		return UploadResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close multipart writer: %w", err)
	}

	var res UploadResult
	err = c.do(ctx, http.MethodPost, "/upload/image", mw.FormDataContentType(), &buf, &res)
	return res, err
}
