// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package classpath

import (
	"strings"
)

// Accumulator collects class path entries and resolves them into the single class path token passed to java.
// An Accumulator belongs to one launch.
type Accumulator interface {
	// Add appends an entry, which may itself be a list of entries.
	Add(entry string)
	// Entries returns the entries added so far.
	Entries() []string
	// Materialize writes whatever artifact Get refers to. It is called once, right before the process starts.
	Materialize() error
	// Get returns the class path token.
	Get() string
}

// PassThrough hands its entries to java as a plain joined list, optionally compressed.
type PassThrough struct {
	platform   Platform
	paths      []string
	compressor *Compressor
	compressed string
}

// NewPassThrough returns an accumulator that joins its entries with the platform list separator.
func NewPassThrough(platform Platform) *PassThrough {
	return &PassThrough{platform: platform}
}

// NewCompressedPassThrough returns an accumulator that joins its entries after shortening dependency cache paths
// with a Compressor. The variable bindings are available from Environment after Materialize.
func NewCompressedPassThrough(platform Platform) *PassThrough {
	return &PassThrough{platform: platform, compressor: NewCompressor(platform)}
}

func (a *PassThrough) Add(entry string) {
	a.paths = append(a.paths, entry)
}

func (a *PassThrough) Entries() []string {
	return append([]string(nil), a.paths...)
}

func (a *PassThrough) Materialize() error {
	if a.compressor != nil {
		a.compressed = a.compressor.CompressPaths(splitList(a.paths, a.platform))
	}
	return nil
}

func (a *PassThrough) Get() string {
	if a.compressor != nil {
		return a.compressed
	}
	return strings.Join(a.paths, a.platform.ListSeparator())
}

// Environment returns the variable bindings the class path token depends on, if any.
func (a *PassThrough) Environment() []string {
	if a.compressor == nil {
		return nil
	}
	return a.compressor.Environment()
}

func splitList(entries []string, platform Platform) []string {
	var out []string
	for _, e := range entries {
		for _, part := range strings.Split(e, platform.ListSeparator()) {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
