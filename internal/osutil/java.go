// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package osutil

import (
	"errors"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/putnami/gwtdev/internal/ioutil"
	"github.com/putnami/gwtdev/internal/trace"
)

// ErrJavaNotFound is returned when no java executable can be located.
var ErrJavaNotFound = errors.New("could not find a java executable, set JAVA_HOME or add java to PATH")

func javaBinary() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

// FindJava returns the java executable of the host installation, preferring $JAVA_HOME/bin over PATH.
// getenv is consulted for JAVA_HOME.
func FindJava(getenv func(string) string) (string, error) {
	if home := getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", javaBinary())
		if ioutil.IsExecutable(candidate) {
			trace.Trace("using java from JAVA_HOME:", candidate)
			return candidate, nil
		}
		trace.Warning("JAVA_HOME is set but", candidate, "is not executable")
	}
	p, err := exec.LookPath(javaBinary())
	if err != nil {
		return "", ErrJavaNotFound
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p, nil
	}
	return abs, nil
}

var javaVersionPattern = regexp.MustCompile(`"(\d+)(?:\.(\d+))?`)

// JavaMajorVersion runs "java -version" and returns the major version. Returns 0 on failure.
func JavaMajorVersion(java string) int {
	out, err := BackTicksWithStderr.Run(java, "-version")
	if err != nil {
		trace.Trace("java -version failed:", err)
		return 0
	}
	return parseJavaMajorVersion(out)
}

func parseJavaMajorVersion(s string) int {
	m := javaVersionPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	major, _ := strconv.Atoi(m[1])
	// legacy "1.x" format
	if major == 1 && len(m) >= 3 {
		if minor, err := strconv.Atoi(m[2]); err == nil {
			return minor
		}
	}
	return major
}
