// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJvmMemorySpec(t *testing.T) {
	tests := []struct {
		spec  string
		bytes int64
	}{
		{"512m", 512 * PowerOfTwo20},
		{"512M", 512 * PowerOfTwo20},
		{"1g", PowerOfTwo30},
		{"64k", 64 * PowerOfTwo10},
		{"2T", 2 * PowerOfTwo40},
		{"1048576", PowerOfTwo20},
		{"8388607t", 8388607 * PowerOfTwo40},
		{"9223372036854775807", math.MaxInt64},
	}
	for _, tt := range tests {
		amount, err := ParseJvmMemorySpec(tt.spec)
		require.Nil(t, err, tt.spec)
		assert.Equal(t, tt.bytes, amount.ToBytes(), tt.spec)
	}
	for _, bad := range []string{"", "12x", "m", "-1m", "0", "1.5g", "9999999999999t", "8388608t", "9223372036854775808"} {
		_, err := ParseJvmMemorySpec(bad)
		assert.NotNil(t, err, bad)
	}
}

func TestAmountOfMemory(t *testing.T) {
	assert.Equal(t, "512m", MegaBytesOfMemory(512).AsJvmSpec())
	assert.Equal(t, "1g", GigaBytesOfMemory(1).AsJvmSpec())
	assert.Equal(t, "1536m", MegaBytesOfMemory(1536).AsJvmSpec())
	assert.Equal(t, "1000", BytesOfMemory(1000).AsJvmSpec())
	assert.Equal(t, "{3 GiB}", GigaBytesOfMemory(3).String())
	assert.Equal(t, "{5 KiB}", KiloBytesOfMemory(5).String())
	assert.Equal(t, 1024, GigaBytesOfMemory(1).ToMB())
}
