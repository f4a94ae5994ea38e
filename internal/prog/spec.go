// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"path/filepath"
	"strings"
)

// Spec describes a program to launch: its argv, extra environment and working directory.
type Spec struct {
	Program  string
	Args     []string
	BaseName string
	Env      map[string]string
	Dir      string
}

// NewSpec returns a spec for argv, where argv[0] is the program.
func NewSpec(argv []string) *Spec {
	progName := argv[0]
	return &Spec{
		Program:  progName,
		Args:     argv,
		BaseName: baseNameOf(progName),
		Env:      make(map[string]string),
	}
}

func baseNameOf(s string) string {
	return filepath.Base(strings.TrimRight(s, `/\`))
}

// CommandLine renders argv space separated.
func (p *Spec) CommandLine() string {
	return strings.Join(p.Args, " ")
}
