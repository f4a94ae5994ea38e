// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/trace"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, envVars ...string) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)
	cli, err := New(&stdout, &stderr, envVars)
	if err != nil {
		t.Fatal(err)
	}
	cli.platform = classpath.Unix
	t.Cleanup(func() {
		trace.SetOutput(os.Stderr)
		trace.SetVerbosity(0)
	})
	return cli, &stdout, &stderr
}

// fakeJavaScript plays a code server and a jetty runner, told apart by their main class.
const fakeJavaScript = `case "$*" in
*CodeServer*)
  echo "[INFO] compiling com.example.App"
  echo "The code server is ready at http://127.0.0.1:9876/"
  exec sleep 30
  ;;
*Runner*)
  echo "jetty started"
  echo "jetty warning" >&2
  exit 0
  ;;
esac
exit 1`

type project struct {
	dir     string
	classes string
	config  string
	java    string
}

func newProject(t *testing.T, script string, extraConfig string) project {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	p := project{
		dir:     dir,
		classes: filepath.Join(dir, "build", "classes"),
		config:  filepath.Join(dir, "gwtdev.yaml"),
		java:    filepath.Join(dir, "bin", "java"),
	}
	require.Nil(t, os.MkdirAll(filepath.Join(p.classes, "com", "example"), 0755))
	require.Nil(t, os.WriteFile(filepath.Join(p.classes, "com", "example", "App.class"), nil, 0644))
	require.Nil(t, os.MkdirAll(filepath.Dir(p.java), 0755))
	require.Nil(t, os.WriteFile(p.java, []byte("#!/bin/sh\n"+script+"\n"), 0755))
	content := fmt.Sprintf(`java_executable: %s
ready_timeout: 20s
codeserver:
  main_class: com.google.gwt.dev.codeserver.CodeServer
  classpath: [build/classes]
  pathing_jar: build/putnami/codeserver.jar
  args: [-port, "9876", com.example.App]
  java:
    max_heap_size: 1g
webserver:
  main_class: org.eclipse.jetty.runner.Runner
  classpath: [build/classes]
  args: [--port, "8080"]
  url: http://localhost:8080/
%s`, p.java, extraConfig)
	require.Nil(t, os.WriteFile(p.config, []byte(content), 0644))
	return p
}

func readFile(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filename)
	require.Nil(t, err)
	return string(data)
}

func writeFile(t *testing.T, filename, content string) {
	t.Helper()
	require.Nil(t, os.WriteFile(filename, []byte(content), 0644))
}
