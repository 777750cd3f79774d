package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout — найденные в распакованном архиве пути.
type Layout struct {
	// Root — корень распаковки.
	Root string

	// JarPath — первый *.jar в каталоге lib.
	JarPath string

	// ConfDir — каталог config, пустой если не найден.
	ConfDir string

	// SSLDir — config/ssl/<security id>, пустой если не найден.
	SSLDir string
}

// SecurityID возвращает имя каталога с TLS-материалами.
func (l *Layout) SecurityID() string {
	if l.SSLDir == "" {
		return ""
	}
	return filepath.Base(l.SSLDir)
}

// Inspect ищет lib/*.jar, config и config/ssl/<id> в дереве root.
//
// Каталоги ищутся сначала среди прямых потомков, затем рекурсивно.
// Отсутствие jar — ошибка ErrNoJar; config и ssl необязательны.
func Inspect(root string) (*Layout, error) {
	layout := &Layout{Root: root}

	lib, err := findSubDir(root, "lib")
	if err != nil {
		return nil, err
	}
	if lib == "" {
		return nil, fmt.Errorf("%w: no lib directory in %s", ErrNoJar, root)
	}

	jar, err := firstJar(lib)
	if err != nil {
		return nil, err
	}
	if jar == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoJar, lib)
	}
	layout.JarPath = jar

	conf, err := findSubDir(root, "config")
	if err != nil {
		return nil, err
	}
	layout.ConfDir = conf
	if conf == "" {
		return layout, nil
	}

	ssl, err := findSubDir(conf, "ssl")
	if err != nil {
		return nil, err
	}
	if ssl != "" {
		// config/ssl/<security id> — единственный подкаталог ssl
		entries, err := os.ReadDir(ssl)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ssl, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				layout.SSLDir = filepath.Join(ssl, e.Name())
				break
			}
		}
	}

	return layout, nil
}

func findSubDir(parent, name string) (string, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", parent, err)
	}

	for _, e := range entries {
		if e.IsDir() && e.Name() == name {
			return filepath.Join(parent, name), nil
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		found, err := findSubDir(filepath.Join(parent, e.Name()), name)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}
	return "", nil
}

func firstJar(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jar") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}
