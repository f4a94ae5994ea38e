// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package classpath

import (
	"runtime"
)

// Platform selects the path conventions used when building and compressing class paths.
type Platform int

const (
	Unix Platform = iota
	Windows
)

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// ListSeparator separates entries of a class path, like File.pathSeparator.
func (p Platform) ListSeparator() string {
	if p == Windows {
		return ";"
	}
	return ":"
}

// Separator separates directories within a single path.
func (p Platform) Separator() string {
	if p == Windows {
		return "\\"
	}
	return "/"
}

// VarReference returns the shell syntax that expands the environment variable name.
func (p Platform) VarReference(name string) string {
	if p == Windows {
		return "%" + name + "%"
	}
	return "${" + name + "}"
}

func (p Platform) cacheMarker() string {
	if p == Windows {
		return `\modules-2\files-2.1\`
	}
	return "/modules-2/files-2.1/"
}

func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "unix"
}
