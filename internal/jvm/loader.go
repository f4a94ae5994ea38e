// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/putnami/gwtdev/internal/trace"
)

// Loader resolves resources against a class path, like a URL class loader. Jars listing a manifest Class-Path,
// such as pathing jars, contribute those entries too.
type Loader struct {
	urls []*url.URL
}

// NewLoader builds a loader over the given class path entries. Entries are made absolute; directories get a
// trailing slash.
func NewLoader(entries []string) (*Loader, error) {
	l := &Loader{}
	seen := make(map[string]bool)
	for _, e := range entries {
		if err := l.add(e, seen); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Loader) add(entry string, seen map[string]bool) error {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return fmt.Errorf("resolve class path entry %s: %w", entry, err)
	}
	if seen[abs] {
		return nil
	}
	seen[abs] = true
	u := fileURL(abs, ioutil.IsDir(abs))
	l.urls = append(l.urls, u)
	if !isJar(abs) {
		return nil
	}
	refs, err := classpath.ManifestClassPath(abs)
	if err != nil {
		trace.Debug("no manifest class path in", abs+":", err)
		return nil
	}
	for _, ref := range refs {
		resolved, err := u.Parse(ref)
		if err != nil || resolved.Scheme != "file" {
			trace.Warning("ignoring manifest class path entry", ref, "in", abs)
			continue
		}
		if err := l.add(filepath.FromSlash(resolved.Path), seen); err != nil {
			return err
		}
	}
	return nil
}

func fileURL(path string, dir bool) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if dir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return &url.URL{Scheme: "file", Path: p}
}

func isJar(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return (ext == ".jar" || ext == ".zip") && ioutil.IsFile(path)
}

// URLs returns the loader's class path in search order.
func (l *Loader) URLs() []*url.URL {
	return append([]*url.URL(nil), l.urls...)
}

// Resource returns the location of the first class path element containing name, a slash separated resource
// path such as com/example/App.class.
func (l *Loader) Resource(name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	for _, u := range l.urls {
		local := filepath.FromSlash(u.Path)
		if strings.HasSuffix(u.Path, "/") {
			if ioutil.IsFile(filepath.Join(local, filepath.FromSlash(name))) {
				return u.String() + name, true
			}
			continue
		}
		if jarContains(local, name) {
			return "jar:" + u.String() + "!/" + name, true
		}
	}
	return "", false
}

func jarContains(jar, name string) bool {
	if !isJar(jar) {
		return false
	}
	r, err := zip.OpenReader(jar)
	if err != nil {
		trace.Debug("cannot read", jar+":", err)
		return false
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name == name {
			return true
		}
	}
	return false
}
