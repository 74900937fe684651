package pagesnap

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

var samplePDF = []byte("%PDF-1.4 fake content for testing")

func TestSnapshot_Bytes(t *testing.T) {
	s := NewSnapshot(samplePDF)
	if !bytes.Equal(s.Bytes(), samplePDF) {
		t.Error("Bytes() did not return original data")
	}
	if s.Len() != len(samplePDF) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(samplePDF))
	}
}

func TestSnapshot_Base64(t *testing.T) {
	got := NewSnapshot(samplePDF).Base64()
	want := base64.StdEncoding.EncodeToString(samplePDF)
	if got != want {
		t.Errorf("Base64() = %q, want %q", got, want)
	}
}

func TestSnapshot_ReaderMultipleCalls(t *testing.T) {
	s := NewSnapshot(samplePDF)
	r1, r2 := s.Reader(), s.Reader()
	buf := make([]byte, 5)
	if _, err := r1.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if r2.Len() != len(samplePDF) {
		t.Errorf("reading one Reader advanced another: Len() = %d", r2.Len())
	}
}

func TestSnapshot_WriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewSnapshot(samplePDF).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(samplePDF)) || !bytes.Equal(buf.Bytes(), samplePDF) {
		t.Errorf("WriteTo wrote %d bytes %q", n, buf.Bytes())
	}
}

func TestSnapshot_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.pdf")
	if err := NewSnapshot(samplePDF).WriteToFile(path, 0o644); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !bytes.Equal(data, samplePDF) {
		t.Error("WriteToFile produced different content")
	}
}

func TestSnapshot_IsPDF(t *testing.T) {
	if !NewSnapshot(samplePDF).IsPDF() {
		t.Error("IsPDF() = false for a PDF header")
	}
	if NewSnapshot([]byte("<html>")).IsPDF() {
		t.Error("IsPDF() = true for HTML")
	}
	if NewSnapshot(nil).IsPDF() {
		t.Error("IsPDF() = true for empty data")
	}
}

func TestSnapshot_Pages(t *testing.T) {
	for _, n := range []int{1, 3} {
		got, err := NewSnapshot(minimalPDF(n)).Pages()
		if err != nil {
			t.Fatalf("Pages(%d-page doc): %v", n, err)
		}
		if got != n {
			t.Errorf("Pages() = %d, want %d", got, n)
		}
	}
}

func TestSnapshot_PagesNotPDF(t *testing.T) {
	if _, err := NewSnapshot([]byte("nope")).Pages(); err == nil {
		t.Error("expected error for non-PDF data")
	}
}
