package loader

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

type fileInfo struct {
	path    string
	rel     string
	modTime int64
	size    int64
}

// walkDocuments collects files under root matching the include patterns and
// not matching the exclude patterns. Patterns use doublestar globs relative
// to root. Results follow filepath.Walk's lexical order, which keeps document
// IDs and chunk order stable across rebuilds.
func walkDocuments(root string, includes, excludes []string) ([]fileInfo, error) {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []fileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if matchesAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(includes, rel) && !matchesAny(excludes, rel) {
			files = append(files, fileInfo{
				path:    path,
				rel:     rel,
				modTime: info.ModTime().Unix(),
				size:    info.Size(),
			})
		}
		return nil
	})
	return files, err
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}
