// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/putnami/gwtdev/internal/classpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnixBuilder(opts ...BuilderOption) *CommandBuilder {
	return NewCommandBuilder(append([]BuilderOption{WithPlatform(classpath.Unix), WithCharset("UTF-8")}, opts...)...)
}

func TestConfigureJavaArgsOrder(t *testing.T) {
	b := newUnixBuilder()
	b.ConfigureJavaArgs(JavaOptions{
		MinHeapSize:  "512m",
		MaxHeapSize:  "1g",
		DebugJava:    true,
		DebugPort:    5005,
		DebugSuspend: true,
	})
	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, []string{
		"-Dfile.encoding=UTF-8",
		"-Xms512m",
		"-Xmx1g",
		"-agentlib:jdwp=server=y,transport=dt_socket,address=5005,suspend=y",
	}, spec.JvmArgs)
}

func TestConfigureJavaArgsAll(t *testing.T) {
	b := newUnixBuilder()
	b.AddJavaArg("-ea")
	b.ConfigureJavaArgs(JavaOptions{
		MinHeapSize: "256m",
		MaxHeapSize: "2g",
		MaxPermSize: "384m",
		TmpDir:      "/tmp/gwt",
		UserDir:     "/proj",
		DebugPort:   8000,
		JavaArgs:    []string{"-XX:+UseG1GC", "-Dgwt.nowarn.legacy.tools"},
	})
	assert.Equal(t, []string{
		"-Dfile.encoding=UTF-8",
		"-ea",
		"-Xms256m",
		"-Xmx2g",
		"-XX:MaxPermSize=384m",
		"-Djava.io.tmpdir=/tmp/gwt",
		"-Duser.dir=/proj",
		"-XX:+UseG1GC",
		"-Dgwt.nowarn.legacy.tools",
	}, b.JavaArgs())
}

func TestBuildOnce(t *testing.T) {
	b := newUnixBuilder().SetMainClass("com.example.Main")
	_, err := b.Build()
	require.Nil(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestBuildPassThrough(t *testing.T) {
	b := newUnixBuilder()
	b.SetMainClass("com.google.gwt.dev.codeserver.CodeServer").
		AddSeparateClassPath("/proj/src/main/java").
		AddClassPath("/proj/build/classes").
		AddClassPath("/lib/a.jar:/lib/b.jar").
		AddArg("-strict").
		AddArgValue("-port", "9876").
		AddArgValue("-bindAddress", "")
	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, "com.google.gwt.dev.codeserver.CodeServer", spec.MainClass)
	assert.Equal(t, []string{"/proj/src/main/java", "/proj/build/classes:/lib/a.jar:/lib/b.jar"}, spec.ClassPath)
	assert.Equal(t, "/proj/src/main/java:/proj/build/classes:/lib/a.jar:/lib/b.jar", spec.JoinedClassPath())
	assert.Equal(t, []string{"/proj/src/main/java", "/proj/build/classes", "/lib/a.jar", "/lib/b.jar"}, spec.ClassPathEntries())
	assert.Equal(t, []string{"-strict", "-port", "9876"}, spec.Args)
	assert.Empty(t, spec.Env)
}

func TestBuildWindowsSeparator(t *testing.T) {
	b := NewCommandBuilder(WithPlatform(classpath.Windows), WithCharset("UTF-8"))
	b.AddClassPath(`C:\proj\classes`).AddClassPath(`C:\lib\a.jar`)
	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, `C:\proj\classes;C:\lib\a.jar`, spec.JoinedClassPath())
}

func TestBuildPathingJar(t *testing.T) {
	dir := t.TempDir()
	classes := filepath.Join(dir, "build", "classes")
	require.Nil(t, os.MkdirAll(classes, 0755))
	jar := filepath.Join(dir, "build", "putnami", "codeserver.jar")

	b := newUnixBuilder(WithPathingJar(jar))
	b.SetMainClass("com.google.gwt.dev.codeserver.CodeServer").
		AddSeparateClassPath("/proj/src/main/java").
		AddClassPath(classes)
	preview := b.Preview()
	assert.Equal(t, []string{"/proj/src/main/java", jar}, preview.ClassPath)
	assert.NoFileExists(t, jar)

	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, []string{"/proj/src/main/java", jar}, spec.ClassPath)
	entries, err := classpath.ManifestClassPath(jar)
	require.Nil(t, err)
	assert.Equal(t, []string{"../classes/"}, entries)
}

func TestBuildPathingJarFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.Nil(t, os.WriteFile(blocker, nil, 0644))
	b := newUnixBuilder(WithPathingJar(filepath.Join(blocker, "run.jar")))
	b.AddClassPath("/lib/a.jar")
	_, err := b.Build()
	assert.ErrorContains(t, err, "could not prepare class path")
}

func TestBuildCompressed(t *testing.T) {
	cache := "/home/u/.gradle/caches/modules-2/files-2.1/"
	b := newUnixBuilder(WithCompression())
	b.AddClassPath("/proj/classes").
		AddClassPath(cache + "com.google.gwt/gwt-user/2.8.2/abc/gwt-user-2.8.2.jar").
		AddClassPath(cache + "com.google.gwt/gwt-dev/2.8.2/def/gwt-dev-2.8.2.jar")
	preview := b.Preview()
	assert.Contains(t, preview.JoinedClassPath(), cache)

	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, "/proj/classes:${V0}com.google.gwt/gwt-user/2.8.2/abc/gwt-user-2.8.2.jar:${V0}com.google.gwt/gwt-dev/2.8.2/def/gwt-dev-2.8.2.jar",
		spec.JoinedClassPath())
	assert.Equal(t, []string{"V0=" + cache}, spec.Env)
	assert.Equal(t, []string{
		"/proj/classes",
		cache + "com.google.gwt/gwt-user/2.8.2/abc/gwt-user-2.8.2.jar",
		cache + "com.google.gwt/gwt-dev/2.8.2/def/gwt-dev-2.8.2.jar",
	}, spec.ExpandedClassPath())
}

func TestAddArgVariants(t *testing.T) {
	yes, no := true, false
	b := newUnixBuilder()
	b.AddArgFile("-war", "").
		AddArgFile("-war", "/proj/build/war").
		AddArgAny("-port", 8888).
		AddArgAny("-logLevel", nil).
		AddArgIf(&yes, "-precompile", "-noprecompile").
		AddArgIf(&no, "-incremental", "-noincremental").
		AddArgIf(nil, "-strict", "-nostrict").
		AddArgIfTrue(&yes, "-failOnError").
		AddArgIfTrue(&no, "-compileTest").
		AddArgIfTrue(nil, "-allowMissingSrc")
	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, []string{
		"-war", "/proj/build/war",
		"-port", "8888",
		"-precompile",
		"-noincremental",
		"-failOnError",
	}, spec.Args)
}

func TestAddArgFileMakesAbsolute(t *testing.T) {
	b := newUnixBuilder()
	b.AddArgFile("-workDir", "build/work")
	spec, err := b.Build()
	require.Nil(t, err)
	require.Len(t, spec.Args, 2)
	assert.True(t, filepath.IsAbs(spec.Args[1]))
	assert.Equal(t, "work", filepath.Base(spec.Args[1]))
}

func TestAddClassPathFilesSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "a.jar")
	require.Nil(t, os.WriteFile(jar, nil, 0644))
	b := newUnixBuilder()
	b.AddClassPathFiles([]string{jar, "", filepath.Join(dir, "missing.jar"), dir})
	spec, err := b.Build()
	require.Nil(t, err)
	assert.Equal(t, []string{jar, dir}, spec.ClassPathEntries())
}

func TestDefaultCharsetArgFirst(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "en_US.ISO-8859-1")
	b := NewCommandBuilder(WithPlatform(classpath.Unix))
	b.ConfigureJavaArgs(JavaOptions{MaxHeapSize: "1g"})
	assert.Equal(t, []string{"-Dfile.encoding=ISO-8859-1", "-Xmx1g"}, b.JavaArgs())
}
