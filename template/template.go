package template

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Size is the device-defined template length in bytes. Every template
// entering or leaving the sensor transfer protocol is exactly this long.
const Size = 512

// Template is an opaque fingerprint feature blob. The sensor defines its
// internal structure; the host only moves it around, sizes it, and hashes
// it.
type Template []byte

// Normalize returns a copy of raw that is exactly Size bytes: short
// buffers are padded with trailing zeros, long ones truncated. The result
// never aliases raw.
func Normalize(raw []byte) Template {
	out := make(Template, Size)
	copy(out, raw)
	return out
}

// Digest returns the hex-encoded SHA-256 of the template bytes. Useful as
// a storage integrity fingerprint; it is NOT an authentication mechanism,
// since two reads of the same finger produce different templates.
func (t Template) Digest() string {
	sum := sha256.Sum256(t)
	return hex.EncodeToString(sum[:])
}

// Load reads a raw template blob from a .bin file. The blob is returned
// as stored; sizing to Size happens at the sensor transfer boundary.
//
// Example:
//
//	tpl, err := template.Load("dataset/alice/fingerprint.bin")
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("template file %s is empty", path)
	}
	return Template(data), nil
}

// ReadFrom reads a raw template blob from any io.Reader.
func ReadFrom(r io.Reader) (Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("template source is empty")
	}
	return Template(data), nil
}

// Save writes the template to a .bin file.
func (t Template) Save(path string) error {
	if len(t) == 0 {
		return fmt.Errorf("refusing to save an empty template")
	}
	if err := os.WriteFile(path, t, 0o600); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
