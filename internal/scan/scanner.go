package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// Resolve expands the given paths into transcript files. A file is taken as
// is; a directory is walked for .txt exports. Missing paths are an error.
func Resolve(paths ...string) ([]FileInfo, error) {
	var files []FileInfo
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, fileInfo(p, info))
			continue
		}
		found, err := walkDir(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkDir(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files = append(files, fileInfo(path, info))
		return nil
	})
	return files, err
}

func fileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:  path,
		Mtime: info.ModTime().Unix(),
		Size:  info.Size(),
	}
}
