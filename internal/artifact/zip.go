package artifact

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Zip упаковывает дерево root в zip-архив, пути относительно root.
func Zip(root string, w io.Writer) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
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

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		dst, err := zw.CreateHeader(hdr)
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
		zw.Close()
		return fmt.Errorf("zip %s: %w", root, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip %s: %w", root, err)
	}
	return nil
}

// ZipToTemp упаковывает root во временный файл и возвращает его путь.
// Удаление файла — ответственность вызывающего.
func ZipToTemp(root string) (string, error) {
	f, err := os.CreateTemp("", "azkaban-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if err := Zip(root, f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}
