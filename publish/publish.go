// Package publish moves finished artifacts out of the scratch directory.
package publish

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/log"
)

// Copy copies src to dst, replacing dst, then carries over the permission bits
// and modification time of src. Missing parent directories of dst are created.
func Copy(src, dst string) error {
	fs := filesystem.API()

	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	if err := fs.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	// closing may touch the modification time, so it happens before Chtimes
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}

	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}

	mtime := info.ModTime()
	return fs.Chtimes(dst, mtime, mtime)
}

// Cleanup removes the scratch directory and everything in it.
func Cleanup(dir string) error {
	if err := filesystem.API().RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}

	log.Infof("removed scratch directory %s", dir)
	return nil
}

// RemoveIfEmpty removes dir when nothing is left in it. A missing dir is not an error.
func RemoveIfEmpty(dir string) error {
	fs := filesystem.API()

	entries, err := fs.ReadDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", dir, err)
	case len(entries) > 0:
		return nil
	}

	if err := fs.Remove(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}
