package pagesnap

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// Snapshot is the PDF rendition of a loaded page.
//
// The underlying bytes are never modified, so its methods may be called
// any number of times.
type Snapshot struct {
	data []byte
}

// NewSnapshot wraps raw PDF bytes.
func NewSnapshot(data []byte) *Snapshot {
	return &Snapshot{data: data}
}

// Bytes returns the raw PDF content.
func (s *Snapshot) Bytes() []byte {
	return s.data
}

// Base64 returns the PDF encoded as standard base64 (RFC 4648).
func (s *Snapshot) Base64() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// Reader returns a [*bytes.Reader] over the PDF content.
func (s *Snapshot) Reader() *bytes.Reader {
	return bytes.NewReader(s.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.data)
	return int64(n), err
}

// WriteToFile writes the PDF to path, creating it if needed.
func (s *Snapshot) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, s.data, perm)
}

// Len returns the size of the PDF in bytes.
func (s *Snapshot) Len() int {
	return len(s.data)
}

// IsPDF reports whether the content starts with the PDF magic number.
func (s *Snapshot) IsPDF() bool {
	return bytes.HasPrefix(s.data, []byte("%PDF-"))
}

// Pages parses the document and returns its page count.
func (s *Snapshot) Pages() (int, error) {
	if !s.IsPDF() {
		return 0, fmt.Errorf("pagesnap: not a PDF document")
	}
	r, err := pdf.NewReader(s.Reader(), int64(len(s.data)))
	if err != nil {
		return 0, fmt.Errorf("pagesnap: reading PDF: %w", err)
	}
	return r.NumPage(), nil
}
