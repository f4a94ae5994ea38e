// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.
package ioutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathPredicates(t *testing.T) {
	assert.True(t, Exists("ioutil.go"))
	assert.False(t, Exists("nosuchthing.go"))
	assert.True(t, IsFile("ioutil.go"))
	assert.False(t, IsFile("."))
	assert.True(t, IsDir("."))
	assert.False(t, IsDir("ioutil.go"))
	assert.False(t, IsExecutable("ioutil.go"))

	tmpDir := t.TempDir()
	script := filepath.Join(tmpDir, "run.sh")
	require.Nil(t, os.WriteFile(script, []byte("#!/bin/sh\necho foo\n"), 0755))
	assert.True(t, IsExecutable(script))
}

func TestAtomicWriteFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	require.Nil(t, AtomicWriteFile(target, []byte("first")))
	data, err := os.ReadFile(target)
	require.Nil(t, err)
	assert.Equal(t, "first", string(data))

	boom := errors.New("boom")
	err = AtomicWrite(target, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	data, err = os.ReadFile(target)
	require.Nil(t, err)
	assert.Equal(t, "first", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.Nil(t, err)
	assert.Equal(t, 1, len(entries))
}
