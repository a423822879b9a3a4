package app

import (
	"io"
	"os"
	"path/filepath"
)

// copyPath copies a file or a directory tree and returns the written path.
// A directory source is copied to dst itself; a file source follows
// destinationFor.
func copyPath(src, dst string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		target, err := destinationFor(src, dst)
		if err != nil {
			return "", err
		}
		return target, copyFile(src, target, info.Mode())
	}

	err = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target, info.Mode())
	})
	if err != nil {
		return "", err
	}
	return filepath.Clean(dst), nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
