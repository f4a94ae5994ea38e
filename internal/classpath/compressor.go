// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package classpath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/putnami/gwtdev/internal/trace"
)

const varPrefix = "V"

// Compressor shortens lists of files from the dependency cache by replacing the cache root of each file with a
// reference to a synthetic environment variable. Prefixes are remembered for the lifetime of the Compressor, so
// repeated calls keep using the same variable names. Not safe for concurrent use.
type Compressor struct {
	platform Platform
	marker   string
	prefixes []string
	vars     map[string]string
}

func NewCompressor(platform Platform) *Compressor {
	return &Compressor{
		platform: platform,
		marker:   platform.cacheMarker(),
		vars:     make(map[string]string),
	}
}

// CompressFiles makes every file absolute and compresses the result.
func (c *Compressor) CompressFiles(files []string) (string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", f, err)
		}
		paths = append(paths, abs)
	}
	return c.CompressPaths(paths), nil
}

// CompressPaths registers the cache prefix of every path not seen before, then rewrites each path with the first
// registered prefix it starts with. The rewritten paths are joined with the platform list separator.
func (c *Compressor) CompressPaths(paths []string) string {
	for _, path := range paths {
		found := strings.Index(path, c.marker)
		if found < 0 {
			continue
		}
		prefix := path[:found] + c.marker
		if _, known := c.vars[prefix]; !known {
			name := fmt.Sprintf("%s%d", varPrefix, len(c.prefixes))
			trace.Debug("new compression prefix", name, "=", prefix)
			c.vars[prefix] = name
			c.prefixes = append(c.prefixes, prefix)
		}
	}
	replaced := make([]string, 0, len(paths))
	for _, path := range paths {
		replaced = append(replaced, c.rewrite(path))
	}
	return strings.Join(replaced, c.platform.ListSeparator())
}

// first match in insertion order, not the longest one
func (c *Compressor) rewrite(path string) string {
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(path, prefix) {
			return c.platform.VarReference(c.vars[prefix]) + path[len(prefix):]
		}
	}
	return path
}

// Environment returns the NAME=value bindings needed to resolve compressed paths, in the order the variables were
// allocated.
func (c *Compressor) Environment() []string {
	envp := make([]string, 0, len(c.prefixes))
	for _, prefix := range c.prefixes {
		envp = append(envp, c.vars[prefix]+"="+prefix)
	}
	return envp
}

// Expand resolves every variable reference in s, undoing CompressPaths.
func (c *Compressor) Expand(s string) string {
	if len(c.prefixes) == 0 {
		return s
	}
	oldnew := make([]string, 0, 2*len(c.prefixes))
	for _, prefix := range c.prefixes {
		oldnew = append(oldnew, c.platform.VarReference(c.vars[prefix]), prefix)
	}
	return strings.NewReplacer(oldnew...).Replace(s)
}

// Len returns the number of distinct prefixes seen so far.
func (c *Compressor) Len() int {
	return len(c.prefixes)
}
