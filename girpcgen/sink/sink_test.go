package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemSinkWriteFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)

	if err := s.WriteFile(context.Background(), "calc.girpc.go", []byte("package calc\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "calc.girpc.go"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "package calc\n" {
		t.Errorf("content = %q", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "calc.girpc.go" {
			t.Errorf("leftover file %q", e.Name())
		}
	}
}

func TestFilesystemSinkOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "a.go", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "a.go", []byte("new")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "a.go"))
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestFilesystemSinkCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	if err := s.WriteFile(context.Background(), "sub/pkg/a.go", []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "pkg", "a.go")); err != nil {
		t.Errorf("nested file not created: %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"calc.girpc.go", false},
		{"sub/calc.girpc.go", false},
		{"", true},
		{"/etc/passwd", true},
		{"../escape.go", true},
		{"sub/../../escape.go", true},
	}
	for _, tt := range tests {
		err := validatePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("validatePath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("package a\n")
	if err := s.WriteFile(ctx, "a.go", content); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Mutating the original must not affect the stored copy.
	content[0] = 'X'
	if got := s.Get("a.go"); !bytes.Equal(got, []byte("package a\n")) {
		t.Errorf("Get = %q, stored content was not copied", got)
	}

	if got := s.Get("missing.go"); len(got) != 0 {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
	if paths := s.Paths(); len(paths) != 1 || paths[0] != "a.go" {
		t.Errorf("Paths = %v", paths)
	}
}

func TestWriteFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemorySink()
	if err := s.WriteFile(ctx, "a.go", []byte("x")); err == nil {
		t.Error("WriteFile succeeded with cancelled context")
	}
}
