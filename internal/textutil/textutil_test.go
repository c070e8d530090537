package textutil

import (
	"bytes"
	"io"
	"testing"
)

func TestNewReaderDecodesLatin1(t *testing.T) {
	// "größe" in ISO-8859-1
	raw := []byte{'g', 'r', 0xF6, 0xDF, 'e'}

	r, err := NewReader(bytes.NewReader(raw), "latin1")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "größe" {
		t.Errorf("decoded = %q, want %q", got, "größe")
	}
}

func TestNewReaderPassesUTF8Through(t *testing.T) {
	src := bytes.NewReader([]byte("straße"))
	r, err := NewReader(src, "")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r != io.Reader(src) {
		t.Fatal("expected utf-8 reader to be returned unchanged")
	}
}

func TestNewReaderRejectsUnknownEncoding(t *testing.T) {
	if _, err := NewReader(bytes.NewReader(nil), "ebcdic"); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestLowerAndReverse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		lower   string
		reverse string
	}{
		{"ascii", "Haus", "haus", "suaH"},
		{"umlaut", "ÄRGER", "ärger", "REGRÄ"},
		{"empty", "", "", ""},
		{"single", "X", "x", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lower(tt.in); got != tt.lower {
				t.Errorf("Lower(%q) = %q, want %q", tt.in, got, tt.lower)
			}
			if got := Reverse(tt.in); got != tt.reverse {
				t.Errorf("Reverse(%q) = %q, want %q", tt.in, got, tt.reverse)
			}
		})
	}
}
