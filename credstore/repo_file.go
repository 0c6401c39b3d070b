package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var _ Repo = (*FileRepo)(nil)

// FileRepo keeps every entry in one JSON object on disk. Writes go to a temp file in
// the same directory that is then renamed over the original, so a crash never leaves
// a half-written session behind.
type FileRepo struct {
	path string
	mu   sync.Mutex
}

func NewFileRepo(path string) (*FileRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("[credstore.NewFileRepo] session file path is required")
	}
	return &FileRepo{path: filepath.Clean(path)}, nil
}

func (r *FileRepo) Path() string {
	return r.path
}

func (r *FileRepo) Get(_ context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (r *FileRepo) Set(_ context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		// An unreadable file is replaced rather than blocking a fresh login
		entries = map[string]string{}
	}
	entries[key] = value
	return r.write(entries)
}

func (r *FileRepo) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		entries = map[string]string{}
	}
	if _, ok := entries[key]; !ok && err == nil {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}
	return r.write(entries)
}

func (r *FileRepo) Close() error {
	return nil
}

func (r *FileRepo) read() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	entries := map[string]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return entries, nil
}

func (r *FileRepo) write(entries map[string]string) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
