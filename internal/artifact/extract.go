package artifact

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ExtractFile распаковывает .tar.gz по пути path. См. Extract.
func ExtractFile(dir, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	return Extract(dir, f, time.Now())
}

// Extract распаковывает gzip-сжатый tar в новый каталог dir/<unix-millis>
// и возвращает его путь.
//
// Если каталог уже существует, возвращает ErrOutputExists.
// Записи, выходящие за пределы каталога, отклоняются с ErrUnsafePath.
// При любой ошибке распаковки созданный каталог удаляется.
func Extract(dir string, r io.Reader, now time.Time) (string, error) {
	out := filepath.Join(dir, strconv.FormatInt(now.UnixMilli(), 10))
	if err := os.Mkdir(out, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w at %s, please attempt submission again", ErrOutputExists, out)
		}
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := extractTo(out, r); err != nil {
		os.RemoveAll(out)
		return "", err
	}
	return out, nil
}

func extractTo(out string, r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArchive, err)
		}

		target, err := safeJoin(out, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
		default:
			// ссылки и устройства не распаковываются
			continue
		}
	}

	return nil
}

func writeFile(path string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeJoin присоединяет имя записи к root, не допуская выхода за root.
func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}
