// Package archive packs a local folder into a single zip payload so it can
// be uploaded as one attachment.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ZipFolder walks root and returns a zip archive of its regular files,
// stored under paths relative to root.
func ZipFolder(root string) ([]byte, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", root)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("zipping folder: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zipping folder: %w", err)
	}
	return buf.Bytes(), nil
}
