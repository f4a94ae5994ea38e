// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"strings"

	"github.com/putnami/gwtdev/internal/classpath"
)

// CommandSpec is the fully resolved description of a java launch.
type CommandSpec struct {
	JvmArgs   []string `json:"jvmArgs"`
	ClassPath []string `json:"classPath"`
	MainClass string   `json:"mainClass"`
	Args      []string `json:"args"`
	// Env holds NAME=value bindings the class path refers to.
	Env      []string           `json:"env,omitempty"`
	Platform classpath.Platform `json:"-"`
}

// JoinedClassPath returns the value passed to -cp.
func (s CommandSpec) JoinedClassPath() string {
	return strings.Join(s.ClassPath, s.Platform.ListSeparator())
}

// ClassPathEntries returns every individual class path entry, with the list separator split out.
func (s CommandSpec) ClassPathEntries() []string {
	var entries []string
	for _, segment := range s.ClassPath {
		for _, e := range strings.Split(segment, s.Platform.ListSeparator()) {
			if e != "" {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

// ExpandedClassPath returns ClassPathEntries with the variable references of Env resolved.
func (s CommandSpec) ExpandedClassPath() []string {
	entries := s.ClassPathEntries()
	if len(s.Env) == 0 {
		return entries
	}
	var pairs []string
	for _, kv := range s.Env {
		if name, value, ok := strings.Cut(kv, "="); ok {
			pairs = append(pairs, s.Platform.VarReference(name), value)
		}
	}
	r := strings.NewReplacer(pairs...)
	for i, e := range entries {
		entries[i] = r.Replace(e)
	}
	return entries
}
