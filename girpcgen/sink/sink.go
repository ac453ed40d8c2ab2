// Package sink provides output destinations for generated source files.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// OutputSink receives generated file content. Paths are relative; the sink
// decides where they land. Implementations must be safe for concurrent use:
// independent services may be generated in parallel by a host build.
type OutputSink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes into a directory, atomically via temp file + rename.
// Generated files are always overwritten; regeneration is the whole point.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string
}

// NewFilesystemSink returns a sink rooted at dir.
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{Root: dir}
}

// WriteFile writes content to path under Root, creating directories as
// needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".girpc-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// MemorySink stores generated files in memory, for tests and dry runs.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns the content written to path, or nil.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.files[path]...)
}

// Paths returns every written path, unordered.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	return paths
}

// validatePath rejects absolute paths and traversal outside the sink root.
func validatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.New("path traversal not allowed")
	}
	return nil
}
