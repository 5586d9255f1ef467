package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veldtec/go-r307/template"
)

// templateFileName is the per-user template file inside the dataset
// directory, one directory per user.
const templateFileName = "fingerprint.bin"

// FileStore keeps templates on disk under root/<user>/fingerprint.bin.
// It implements auth.TemplateStore.
type FileStore struct {
	root string
}

// NewFileStore returns a store rooted at dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

func (s *FileStore) Save(_ context.Context, userID string, tpl template.Template) error {
	dir, err := s.userDir(userID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create user directory: %w", err)
	}
	return tpl.Save(filepath.Join(dir, templateFileName))
}

func (s *FileStore) Load(_ context.Context, userID string) (template.Template, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return nil, err
	}
	return template.Load(filepath.Join(dir, templateFileName))
}

// userDir validates the user identifier and maps it to a directory.
// Identifiers are opaque path components; anything that could escape
// the root is rejected.
func (s *FileStore) userDir(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id cannot be empty")
	}
	if userID == "." || userID == ".." ||
		strings.ContainsAny(userID, `/\`) ||
		strings.ContainsRune(userID, 0) {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	return filepath.Join(s.root, userID), nil
}
