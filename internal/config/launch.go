// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package config

import (
	"path/filepath"
	"sort"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/putnami/gwtdev/internal/jvm"
	"github.com/putnami/gwtdev/internal/trace"
)

// CommandBuilder returns a builder holding everything p configures. Class path entries may be glob patterns;
// entries that match nothing on disk are left out.
func (p *Process) CommandBuilder(platform classpath.Platform) *jvm.CommandBuilder {
	opts := []jvm.BuilderOption{jvm.WithPlatform(platform)}
	if p.PathingJar != "" {
		opts = append(opts, jvm.WithPathingJar(p.PathingJar))
	} else if p.CompressClassPath {
		opts = append(opts, jvm.WithCompression())
	}
	b := jvm.NewCommandBuilder(opts...)
	b.SetMainClass(p.MainClass).ConfigureJavaArgs(p.Java)
	for _, segment := range p.SeparateClassPath {
		b.AddSeparateClassPath(segment)
	}
	b.AddClassPathFiles(p.classPathFiles())
	for _, arg := range p.Args {
		b.AddArg(arg)
	}
	return b
}

func (p *Process) classPathFiles() []string {
	var files []string
	for _, entry := range p.ClassPath {
		matches, err := filepath.Glob(entry)
		if err != nil {
			trace.Warning("invalid class path pattern", entry+":", err)
			continue
		}
		if matches == nil {
			// not a pattern, or a pattern matching nothing
			files = append(files, entry)
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// ExecutorOptions returns how p is to be executed.
func (c *Config) ExecutorOptions(p *Process) []jvm.ExecutorOption {
	var opts []jvm.ExecutorOption
	if c.JavaExecutable != "" {
		opts = append(opts, jvm.WithJavaExecutable(c.JavaExecutable))
	}
	if p.WorkDir != "" {
		opts = append(opts, jvm.WithDir(p.WorkDir))
	}
	if len(p.Env) > 0 {
		keys := make([]string, 0, len(p.Env))
		for k := range p.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kvs := make([]string, 0, len(keys))
		for _, k := range keys {
			kvs = append(kvs, k+"="+p.Env[k])
		}
		opts = append(opts, jvm.WithEnv(kvs...))
	}
	return opts
}

// Sample returns a starting point for a project's configuration.
func Sample() *Config {
	c := Default()
	c.CodeServer.MainClass = "com.google.gwt.dev.codeserver.CodeServer"
	c.CodeServer.ClassPath = []string{"src/main/java", "build/classes/java/main", "lib/*.jar"}
	c.CodeServer.PathingJar = "build/putnami/codeserver.jar"
	c.CodeServer.Args = []string{"-port", "9876", "-src", "src/main/java", "-launcherDir", "build/putnami/war", "com.example.App"}
	c.CodeServer.Java.MinHeapSize = "512m"
	c.CodeServer.Java.MaxHeapSize = "1g"
	c.WebServer.MainClass = "org.eclipse.jetty.runner.Runner"
	c.WebServer.ClassPath = []string{"lib/jetty-runner.jar"}
	c.WebServer.Args = []string{"--port", "8080", "build/putnami/war"}
	c.WebServer.URL = "http://localhost:8080/"
	c.WebServer.Java.MaxHeapSize = "256m"
	return c
}
