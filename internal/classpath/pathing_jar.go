// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package classpath

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/putnami/gwtdev/internal/trace"
)

// PathingJar collects class path entries into the manifest of an otherwise empty jar, so that java only needs the
// jar on its command line.
type PathingJar struct {
	file     string
	platform Platform
	paths    []string
}

// NewPathingJar returns an accumulator that materializes into the jar at file.
func NewPathingJar(file string, platform Platform) *PathingJar {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return &PathingJar{file: file, platform: platform}
}

func (j *PathingJar) Add(entry string) {
	j.paths = append(j.paths, strings.Split(entry, j.platform.ListSeparator())...)
}

func (j *PathingJar) Entries() []string {
	return append([]string(nil), j.paths...)
}

// Get returns the absolute path of the jar.
func (j *PathingJar) Get() string {
	return j.file
}

// ManifestEntries returns the Class-Path entries the jar will list: distinct, in first-seen order, relative to the
// jar's directory, using forward slashes, with a trailing slash for directories.
func (j *PathingJar) ManifestEntries() ([]string, error) {
	baseDir := filepath.Dir(j.file)
	seen := make(map[string]bool, len(j.paths))
	completed := make([]string, 0, len(j.paths))
	for _, path := range j.paths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve class path entry %s: %w", path, err)
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil {
			return nil, fmt.Errorf("relativize class path entry %s: %w", path, err)
		}
		entry := (&url.URL{Path: filepath.ToSlash(rel)}).EscapedPath()
		if ioutil.IsDir(abs) || strings.HasSuffix(path, j.platform.Separator()) {
			entry += "/"
		}
		completed = append(completed, entry)
	}
	return completed, nil
}

// Materialize writes the jar. The jar is written to a temporary file first, so a failure never leaves a partial
// jar behind.
func (j *PathingJar) Materialize() error {
	entries, err := j.ManifestEntries()
	if err != nil {
		return err
	}
	trace.Trace("writing pathing jar", j.file, "with", len(entries), "entries")
	if err := os.MkdirAll(filepath.Dir(j.file), 0755); err != nil {
		return fmt.Errorf("create pathing jar directory: %w", err)
	}
	attrs := []attribute{
		{name: attrManifestVer, value: "1.0"},
		{name: attrClassPath, value: strings.Join(entries, " ")},
	}
	err = ioutil.AtomicWrite(j.file, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		mf, err := zw.CreateHeader(&zip.FileHeader{Name: manifestName, Method: zip.Deflate})
		if err != nil {
			return err
		}
		if err := writeManifest(mf, attrs); err != nil {
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return fmt.Errorf("write pathing jar %s: %w", j.file, err)
	}
	return nil
}

// ManifestClassPath returns the Class-Path entries listed in the manifest of jar.
func ManifestClassPath(jar string) ([]string, error) {
	zr, err := zip.OpenReader(jar)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != manifestName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		attrs, err := readManifest(rc)
		if err != nil {
			return nil, fmt.Errorf("read manifest of %s: %w", jar, err)
		}
		return strings.Fields(attrs[attrClassPath]), nil
	}
	return nil, fmt.Errorf("%s has no %s", jar, manifestName)
}
