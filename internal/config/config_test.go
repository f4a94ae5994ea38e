// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
java_executable: /jdk/bin/java
ready_timeout: 90s
open_browser: true
codeserver:
  main_class: com.google.gwt.dev.codeserver.CodeServer
  classpath:
    - build/classes
    - /opt/gwt/gwt-dev.jar
  separate_classpath: [src/main/java]
  pathing_jar: build/putnami/codeserver.jar
  args: [-port, "9876", com.example.App]
  java:
    min_heap_size: 512m
    max_heap_size: 1g
    debug_java: true
    debug_port: 5005
webserver:
  main_class: org.eclipse.jetty.runner.Runner
  classpath: [lib/jetty-runner.jar]
  work_dir: build
  env:
    JETTY_HOME: /opt/jetty
  url: http://localhost:8080/
`

func noEnv(string) string { return "" }

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), DefaultFile)
	require.Nil(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoad(t *testing.T) {
	filename := writeConfig(t, testConfig)
	dir := filepath.Dir(filename)
	cfg, err := Load(filename, noEnv)
	require.Nil(t, err)

	assert.Equal(t, "/jdk/bin/java", cfg.JavaExecutable)
	assert.Equal(t, 90*time.Second, cfg.ReadyTimeout)
	assert.True(t, cfg.OpenBrowser)

	cs := cfg.CodeServer
	assert.Equal(t, "com.google.gwt.dev.codeserver.CodeServer", cs.MainClass)
	assert.Equal(t, []string{filepath.Join(dir, "build", "classes"), "/opt/gwt/gwt-dev.jar"}, cs.ClassPath)
	assert.Equal(t, []string{filepath.Join(dir, "src", "main", "java")}, cs.SeparateClassPath)
	assert.Equal(t, filepath.Join(dir, "build", "putnami", "codeserver.jar"), cs.PathingJar)
	assert.Equal(t, []string{"-port", "9876", "com.example.App"}, cs.Args)
	assert.Equal(t, jvm.JavaOptions{MinHeapSize: "512m", MaxHeapSize: "1g", DebugJava: true, DebugPort: 5005}, cs.Java)

	ws := cfg.WebServer
	assert.Equal(t, filepath.Join(dir, "build"), ws.WorkDir)
	assert.Equal(t, map[string]string{"JETTY_HOME": "/opt/jetty"}, ws.Env)
	assert.Equal(t, "http://localhost:8080/", ws.URL)
	assert.Equal(t, jvm.DefaultDebugPort, ws.Java.DebugPort)
}

func TestLoadEnvOverrides(t *testing.T) {
	filename := writeConfig(t, testConfig)
	cfg, err := Load(filename, envOf(map[string]string{
		EnvJava:         "/usr/local/bin/java",
		EnvReadyTimeout: "2m",
		EnvOpenBrowser:  "false",
		EnvDebugPort:    "8001",
	}))
	require.Nil(t, err)
	assert.Equal(t, "/usr/local/bin/java", cfg.JavaExecutable)
	assert.Equal(t, 2*time.Minute, cfg.ReadyTimeout)
	assert.False(t, cfg.OpenBrowser)
	assert.True(t, cfg.CodeServer.Java.DebugJava)
	assert.Equal(t, 8001, cfg.CodeServer.Java.DebugPort)
	assert.Equal(t, jvm.DefaultDebugPort, cfg.WebServer.Java.DebugPort)

	_, err = Load(filename, envOf(map[string]string{EnvReadyTimeout: "soon"}))
	assert.ErrorContains(t, err, "invalid GWTDEV_READY_TIMEOUT")
	_, err = Load(filename, envOf(map[string]string{EnvOpenBrowser: "maybe"}))
	assert.ErrorContains(t, err, "invalid GWTDEV_OPEN_BROWSER")
	_, err = Load(filename, envOf(map[string]string{EnvDebugPort: "-1"}))
	assert.ErrorContains(t, err, "debug_port must be between 1 and 65535")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := []struct {
		edit string
		with string
		err  string
	}{
		{"main_class: org.eclipse.jetty.runner.Runner", "main_class: \"\"", "webserver: main_class is required"},
		{"max_heap_size: 1g", "max_heap_size: 12x", "codeserver: java: max_heap_size: invalid JVM memory spec '12x'"},
		{"ready_timeout: 90s", "ready_timeout: soon", "invalid configuration"},
		{"ready_timeout: 90s", "ready_timeout: -5s", "ready_timeout must not be negative"},
		{"debug_port: 5005", "debug_port: -2", "debug_port must be between 1 and 65535"},
		{"open_browser: true", "open_browsr: true", "field open_browsr not found"},
		{"url: http://localhost:8080/", "url: localhost:8080", "url must be http or https"},
		{"  pathing_jar: build/putnami/codeserver.jar", "  pathing_jar: build/putnami/codeserver.jar\n  compress_classpath: true", "cannot be combined"},
		{"    max_heap_size: 1g", "    max_heap_size: 1g\n    pathing_jar: build/other.jar", "field pathing_jar not found"},
		{"max_heap_size: 1g", "max_heap_size: 9999999999999t", "codeserver: java: max_heap_size: JVM memory spec '9999999999999t' is too large"},
	}
	for _, tt := range tests {
		require.Contains(t, testConfig, tt.edit)
		filename := writeConfig(t, strings.Replace(testConfig, tt.edit, tt.with, 1))
		_, err := Load(filename, noEnv)
		assert.ErrorContains(t, err, tt.err, tt.with)
	}

	filename := writeConfig(t, strings.Replace(testConfig, "main_class: com.google.gwt.dev.codeserver.CodeServer", "main_class: \"\"", 1))
	_, err = Load(filename, noEnv)
	assert.ErrorIs(t, err, ErrMissingMainClass)
}

func TestReadEmpty(t *testing.T) {
	cfg, err := Read(strings.NewReader(""))
	require.Nil(t, err)
	assert.Equal(t, Default(), cfg)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingMainClass)
}

func TestWriteRoundTrip(t *testing.T) {
	sample := Sample()
	require.Nil(t, sample.Validate())

	var buf bytes.Buffer
	require.Nil(t, sample.Write(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "# gwtdev launch configuration."), buf.String())
	assert.Contains(t, buf.String(), "main_class: com.google.gwt.dev.codeserver.CodeServer\n")

	read, err := Read(&buf)
	require.Nil(t, err)
	assert.Equal(t, sample, read)

	filename := filepath.Join(t.TempDir(), DefaultFile)
	require.Nil(t, sample.WriteFile(filename))
	cfg, err := Load(filename, noEnv)
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(filename), "build", "putnami", "codeserver.jar"), cfg.CodeServer.PathingJar)
}

func TestProcessByName(t *testing.T) {
	cfg := Sample()
	p, err := cfg.Process(CodeServer)
	require.Nil(t, err)
	assert.Same(t, &cfg.CodeServer, p)
	p, err = cfg.Process(WebServer)
	require.Nil(t, err)
	assert.Same(t, &cfg.WebServer, p)
	_, err = cfg.Process("jetty")
	assert.ErrorContains(t, err, "unknown process 'jetty'")
}
