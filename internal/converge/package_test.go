// Where: internal/converge/package_test.go
// What: Code package loading tests.
package converge

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCodePackageFileIsReturnedAsIs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.zip")
	content := []byte("prebuilt archive bytes")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := loadCodePackage(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Fatalf("file content altered")
	}
}

func TestLoadCodePackageZipsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "lib"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"handler.py":    "def handler(event, context): pass",
		"lib/helper.py": "PAGE_SIZE = 10",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	data, err := loadCodePackage(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	seen := map[string]bool{}
	for _, file := range reader.File {
		seen[file.Name] = true
	}
	for name := range files {
		if !seen[name] {
			t.Fatalf("archive missing %s, has %v", name, seen)
		}
	}
}

func TestLoadCodePackageMissingPath(t *testing.T) {
	if _, err := loadCodePackage(filepath.Join(t.TempDir(), "nope.zip")); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
