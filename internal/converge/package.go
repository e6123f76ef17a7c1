// Where: internal/converge/package.go
// What: Function code package loading.
// Why: Accept both prebuilt zip archives and plain source directories.
package converge

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// loadCodePackage reads the code package at codeURI. A file is returned
// as-is (expected to be a zip archive); a directory is zipped in memory.
func loadCodePackage(codeURI string) ([]byte, error) {
	info, err := os.Stat(codeURI)
	if err != nil {
		return nil, fmt.Errorf("code package: %w", err)
	}
	if !info.IsDir() {
		return os.ReadFile(codeURI)
	}
	return zipDirectory(codeURI)
}

func zipDirectory(dir string) ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		dst, err := writer.Create(strings.ReplaceAll(rel, string(filepath.Separator), "/"))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("zip %s: %w", dir, err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
