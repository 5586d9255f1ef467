package template

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{
			name:  "short template padded with trailing zeros",
			input: bytes.Repeat([]byte{0xAB}, Size-50),
		},
		{
			name:  "long template truncated",
			input: bytes.Repeat([]byte{0xCD}, Size+50),
		},
		{
			name:  "exact size unchanged",
			input: bytes.Repeat([]byte{0x11}, Size),
		},
		{
			name:  "empty input becomes all zeros",
			input: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)

			if len(got) != Size {
				t.Fatalf("len = %d, want %d", len(got), Size)
			}

			n := len(tt.input)
			if n > Size {
				n = Size
			}
			if !bytes.Equal(got[:n], tt.input[:n]) {
				t.Error("leading bytes do not match input")
			}
			for i := n; i < Size; i++ {
				if got[i] != 0 {
					t.Fatalf("byte %d = 0x%02X, want zero padding", i, got[i])
				}
			}
		})
	}
}

func TestNormalizeDoesNotAliasInput(t *testing.T) {
	raw := bytes.Repeat([]byte{0x55}, Size)
	tpl := Normalize(raw)
	raw[0] = 0x00

	if tpl[0] != 0x55 {
		t.Error("Normalize() returned a buffer aliasing the input")
	}
}

func TestDigest(t *testing.T) {
	a := Normalize(bytes.Repeat([]byte{0x01}, 100))
	b := Normalize(bytes.Repeat([]byte{0x01}, 100))
	c := Normalize(bytes.Repeat([]byte{0x02}, 100))

	if a.Digest() != b.Digest() {
		t.Error("identical templates produced different digests")
	}
	if a.Digest() == c.Digest() {
		t.Error("different templates produced the same digest")
	}
	if len(a.Digest()) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(a.Digest()))
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fingerprint.bin")

	original := Normalize(bytes.Repeat([]byte{0x5A}, 300))
	if err := original.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(loaded, original) {
		t.Error("loaded template differs from saved template")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.bin")); err == nil {
		t.Error("Load() on a missing file succeeded, want error")
	}

	empty := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("Load() on an empty file: error = %v, want empty-file error", err)
	}
}

func TestSaveEmptyRejected(t *testing.T) {
	var tpl Template
	if err := tpl.Save(filepath.Join(t.TempDir(), "x.bin")); err == nil {
		t.Error("Save() of an empty template succeeded, want error")
	}
}
