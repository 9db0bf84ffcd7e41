package compression

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

const document = "contact alice@example.com or bob@example.org\n"

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Kind
	}{
		{"plain", "notes.txt", []byte(document), KindNone},
		{"gzip extension", "notes.txt.gz", nil, KindGzip},
		{"bzip2 extension", "notes.bz2", nil, KindBzip2},
		{"xz extension", "notes.XZ", nil, KindXz},
		{"gzip magic", "notes", gzipped(t, document), KindGzip},
		{"xz magic", "notes", xzipped(t, document), KindXz},
		{"bzip2 magic", "notes", []byte("BZh91AY&SY"), KindBzip2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.file, tt.data); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecompress(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"plain", "notes.txt", []byte(document)},
		{"gzip", "notes.txt.gz", gzipped(t, document)},
		{"xz", "notes.txt.xz", xzipped(t, document)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.file, tt.data)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if string(got) != document {
				t.Errorf("Decompress() = %q, want %q", got, document)
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	if _, err := Decompress("notes.gz", []byte("not gzip")); err == nil {
		t.Error("Decompress(corrupt gzip) expected error")
	}
	if _, err := Decompress("notes.xz", []byte("not xz")); err == nil {
		t.Error("Decompress(corrupt xz) expected error")
	}
}

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/docs/list.txt.gz", gzipped(t, document), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(fs, "/docs/list.txt.gz")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != document {
		t.Errorf("ReadFile() = %q", got)
	}

	if _, err := ReadFile(fs, "/docs/missing.txt"); err == nil {
		t.Error("ReadFile(missing) expected error")
	}
}
