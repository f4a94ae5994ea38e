// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJavaMajorVersion(t *testing.T) {
	assert.Equal(t, 8, parseJavaMajorVersion(`java version "1.8.0_292"`))
	assert.Equal(t, 17, parseJavaMajorVersion(`openjdk version "17.0.9" 2023-10-17`))
	assert.Equal(t, 21, parseJavaMajorVersion(`openjdk version "21" 2023-09-19`))
	assert.Equal(t, 0, parseJavaMajorVersion("garbage"))
}

func TestFindJavaFromJavaHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix only")
	}
	home := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(home, "bin"), 0755))
	java := filepath.Join(home, "bin", "java")
	require.Nil(t, os.WriteFile(java, []byte("#!/bin/sh\n"), 0755))
	env := map[string]string{"JAVA_HOME": home}
	got, err := FindJava(func(k string) string { return env[k] })
	require.Nil(t, err)
	assert.Equal(t, java, got)
}

func TestExitError(t *testing.T) {
	defer func() {
		r := recover()
		jee, ok := r.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, "boom", jee.Error())
		assert.False(t, errors.Is(jee, os.ErrNotExist))
	}()
	ExitMsg("boom")
}

func TestExitErrWraps(t *testing.T) {
	defer func() {
		jee := recover().(*ExitError)
		assert.True(t, errors.Is(jee, os.ErrNotExist))
	}()
	ExitErr(os.ErrNotExist)
}
