package pagesnap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Uploader posts PDF snapshots to the file-hosting endpoint.
type Uploader struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewUploader returns an Uploader for [DefaultUploadURL] unless
// [WithUploadURL] says otherwise.
func NewUploader(opts ...Option) *Uploader {
	cfg := newConfig(opts)
	return &Uploader{
		url:    cfg.uploadURL,
		client: cfg.httpClient,
		logger: cfg.logger.Named("upload"),
	}
}

// URL returns the endpoint uploads are sent to.
func (u *Uploader) URL() string { return u.url }

// Upload sends pdf and returns the response body verbatim, whatever the
// status code. Any failure is logged and yields "".
func (u *Uploader) Upload(ctx context.Context, pdf []byte) string {
	resp, err := u.Do(ctx, pdf)
	if err != nil {
		u.logger.Error("ErrorUploadPDF", zap.Error(err))
		return ""
	}
	u.logger.Info("ResponseUploadPDF", zap.String("response", resp))
	return resp
}

// Do is Upload with the error returned instead of logged.
func (u *Uploader) Do(ctx context.Context, pdf []byte) (string, error) {
	body, contentType, err := EncodeMultipart(NewBoundary(), pdf)
	if err != nil {
		return "", err
	}

	req, err := u.newRequest(ctx, body, contentType)
	if err != nil {
		return "", err
	}

	res, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pagesnap: posting to %s: %w", u.url, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("pagesnap: reading response: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("pagesnap: response is not UTF-8 (%d bytes, status %d)", len(data), res.StatusCode)
	}
	u.logger.Debug("upload finished",
		zap.Int("status", res.StatusCode),
		zap.Int("sent_bytes", len(body)),
		zap.Int("received_bytes", len(data)))
	return string(data), nil
}

func (u *Uploader) newRequest(ctx context.Context, body []byte, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pagesnap: building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return req, nil
}
