// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
// File utilities.

package ioutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Exists returns true if the given path exists.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist) && info != nil
}

// IsDir returns true if the given path points to an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist) && info != nil && info.IsDir()
}

// IsFile returns true if the given path points to an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist) && info != nil && info.Mode().IsRegular()
}

// IsExecutable returns true if the given path points to an executable file.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist) &&
		info != nil &&
		info.Mode().IsRegular() &&
		((int(info.Mode()) & 0o111) == 0o111)
}

// AtomicWriteFile atomically writes data to filename.
func AtomicWriteFile(filename string, data []byte) error {
	return AtomicWrite(filename, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWrite writes filename by streaming fn into a temporary file in the same directory and renaming it into
// place. The target is left untouched if fn or any file operation fails.
func AtomicWrite(filename string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(filename)
	tmpFile, err := os.CreateTemp(dir, ".gwtdev-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())
	if err := fn(tmpFile); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), filename)
}
