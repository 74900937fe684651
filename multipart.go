package pagesnap

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

// Form field layout of an upload.
const (
	FormField       = "file"
	FormFilename    = "file.pdf"
	FormContentType = "application/pdf"
)

// NewBoundary returns "Boundary-" followed by an upper-case random UUID.
func NewBoundary() string {
	return "Boundary-" + strings.ToUpper(uuid.NewString())
}

// EncodeMultipart writes data as the only part of a multipart/form-data
// body delimited by boundary. It returns the body and the matching
// Content-Type header value.
func EncodeMultipart(boundary string, data []byte) (body []byte, contentType string, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("pagesnap: boundary %q: %w", boundary, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, FormField, FormFilename))
	h.Set("Content-Type", FormContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("pagesnap: creating part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("pagesnap: writing part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("pagesnap: closing body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
