package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// UploadResult mirrors the upload-book-files response.
type UploadResult struct {
	CoverURL  string `json:"coverUrl"`
	CoverPath string `json:"coverPath"`
	AudioURL  string `json:"audioUrl"`
	AudioPath string `json:"audioPath"`
	Duration  int    `json:"duration"`
}

// UploadBookFiles sends local audio and cover files to the
// upload-book-files function endpoint. Either path may be empty;
// bookID 0 uploads without patching a book.
func (c *Client) UploadBookFiles(ctx context.Context, bookID uint, audioPath, coverPath string) (*UploadResult, error) {
	if audioPath == "" && coverPath == "" {
		return nil, fmt.Errorf("audio or cover file is required")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if audioPath != "" {
		if err := attachFile(mw, "audioFile", audioPath); err != nil {
			return nil, err
		}
	}
	if coverPath != "" {
		if err := attachFile(mw, "coverFile", coverPath); err != nil {
			return nil, err
		}
	}
	if bookID != 0 {
		if err := mw.WriteField("bookId", strconv.FormatUint(uint64(bookID), 10)); err != nil {
			return nil, fmt.Errorf("failed to write bookId field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/functions/upload-book-files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var result UploadResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func attachFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return nil
}
