// Package artifact готовит пакет проекта к загрузке в Azkaban.
//
// Входной пакет — .tar.gz с деревом вида:
//
//	<name>/
//	  lib/*.jar
//	  config/
//	    ssl/<security id>/   — TLS-материалы
//	  *.job
//
// Extract распаковывает архив, Inspect находит jar, config и ssl,
// ZipToTemp упаковывает дерево в zip для ajax=upload.
package artifact
