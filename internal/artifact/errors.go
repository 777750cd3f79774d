package artifact

import "errors"

var (
	// ErrOutputExists — каталог распаковки уже существует.
	ErrOutputExists = errors.New("folder already exists")

	// ErrInvalidArchive — файл не является .tar.gz.
	ErrInvalidArchive = errors.New("invalid tar.gz archive")

	// ErrUnsafePath — запись архива указывает за пределы каталога распаковки.
	ErrUnsafePath = errors.New("archive entry escapes output dir")

	// ErrNoJar — в архиве нет lib/*.jar.
	ErrNoJar = errors.New("no jar found in lib")
)
