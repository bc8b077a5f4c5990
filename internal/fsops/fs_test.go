package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var _ FS = (*RealFS)(nil)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "valid relative file",
			path: "routes.json",
		},
		{
			name: "valid nested path",
			path: "plans/out/plan.json",
		},
		{
			name: "dot prefixed path",
			path: "./routes.json",
		},
		{
			name: "hidden file",
			path: ".hidden/file.json",
		},
		{
			name:    "parent directory traversal",
			path:    "../etc/passwd",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "traversal in middle",
			path:    "plans/../../etc/passwd",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "double dot inside a name",
			path:    "routes..json",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "home directory expansion",
			path:    "~/secrets",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "tilde anywhere",
			path:    "plans/backup~",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "absolute path",
			path:    "/etc/passwd",
			wantErr: ErrAbsolutePath,
		},
		{
			name:    "absolute traversal reports traversal first",
			path:    "/etc/../passwd",
			wantErr: ErrPathTraversal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path, "x")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidatePath(%q) unexpected error: %v", tt.path, err)
				}
				if got != tt.path {
					t.Errorf("ValidatePath(%q) = %q, want path unchanged", tt.path, got)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidatePath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath_ErrorContext(t *testing.T) {
	_, err := ValidatePath("../routes.json", "routes file")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected *PathError, got %T", err)
	}
	if pathErr.Path != "../routes.json" {
		t.Errorf("Path = %q, want %q", pathErr.Path, "../routes.json")
	}
	if pathErr.Purpose != "routes file" {
		t.Errorf("Purpose = %q, want %q", pathErr.Purpose, "routes file")
	}
	want := "path traversal detected in routes file: ../routes.json"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRealFS_WriteFile(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "plan.json")

	if err := fs.WriteFile(path, []byte("first version, longer"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected truncated rewrite, got %q", data)
	}
}

func TestRealFS_WriteFile_MissingDirectory(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "missing", "plan.json")

	if err := fs.WriteFile(path, []byte("x"), 0644); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")

	if err := fs.AtomicWrite(path, []byte("atomic content"), 0600); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "atomic content" {
		t.Errorf("content = %q, want %q", data, "atomic content")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
