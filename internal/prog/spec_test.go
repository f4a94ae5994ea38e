// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgSpec(t *testing.T) {
	spec := NewSpec([]string{"/usr/lib/jvm/bin/java", "-version"})
	assert.Equal(t, "java", spec.BaseName)
	assert.Equal(t, "/usr/lib/jvm/bin/java", spec.Program)
	assert.Equal(t, "/usr/lib/jvm/bin/java -version", spec.CommandLine())
}

func TestProgSpecEnv(t *testing.T) {
	spec := NewSpec([]string{"/usr/bin/java"})
	t.Setenv("FOO", "old foo")
	t.Setenv("BAR", "bar")
	spec.Setenv("FOO", "foo")
	spec.SetenvList([]string{"V0=/home/u/.gradle/caches/modules-2/files-2.1/", "invalid"})
	assert.Equal(t, "foo", spec.Getenv("FOO"))
	assert.Equal(t, "bar", spec.Getenv("BAR"))
	assert.Equal(t, "/home/u/.gradle/caches/modules-2/files-2.1/", spec.Getenv("V0"))
	assert.Equal(t, " FOO=foo V0=/home/u/.gradle/caches/modules-2/files-2.1/", spec.ReadableEnv())

	envv := spec.EffectiveEnv()
	assert.Contains(t, envv, "FOO=foo")
	assert.Contains(t, envv, "BAR=bar")
	assert.NotContains(t, envv, "FOO=old foo")
	assert.True(t, slices.IsSorted(envv))
}
