// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	_ = 1 << (10 * iota)
	PowerOfTwo10
	PowerOfTwo20
	PowerOfTwo30
	PowerOfTwo40
)

type AmountOfMemory struct {
	numBytes int64
}

func BytesOfMemory(v int64) AmountOfMemory {
	return AmountOfMemory{numBytes: v}
}
func KiloBytesOfMemory(v int64) AmountOfMemory {
	return BytesOfMemory(v * PowerOfTwo10)
}
func MegaBytesOfMemory(v int) AmountOfMemory {
	return BytesOfMemory(int64(v) * PowerOfTwo20)
}
func GigaBytesOfMemory(v int) AmountOfMemory {
	return BytesOfMemory(int64(v) * PowerOfTwo30)
}

func (v AmountOfMemory) ToBytes() int64 {
	return v.numBytes
}
func (v AmountOfMemory) ToMB() int {
	return int(v.numBytes / PowerOfTwo20)
}

func (v AmountOfMemory) AsJvmSpec() string {
	val := v.numBytes
	suffix := ""
	for _, s := range []string{"k", "m", "g"} {
		if val == 0 || val%PowerOfTwo10 != 0 {
			break
		}
		val = val / PowerOfTwo10
		suffix = s
	}
	return fmt.Sprintf("%d%s", val, suffix)
}

func (v AmountOfMemory) String() string {
	val := v.numBytes
	idx := 0
	suffix := [5]string{"bytes", "KiB", "MiB", "GiB", "TiB"}
	for val > 0 && (val%PowerOfTwo10 == 0) && idx < len(suffix)-1 {
		val = val / PowerOfTwo10
		idx++
	}
	return fmt.Sprintf("{%d %s}", val, suffix[idx])
}

// ParseJvmMemorySpec parses a size the way -Xmx accepts it: a number of bytes, optionally followed by one of the
// suffixes k, m, g or t (either case).
func ParseJvmMemorySpec(spec string) (AmountOfMemory, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return BytesOfMemory(0), fmt.Errorf("empty JVM memory spec")
	}
	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = PowerOfTwo10
	case 'm', 'M':
		multiplier = PowerOfTwo20
	case 'g', 'G':
		multiplier = PowerOfTwo30
	case 't', 'T':
		multiplier = PowerOfTwo40
	}
	digits := s
	if multiplier != 1 {
		digits = s[:len(s)-1]
	}
	val, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || val <= 0 {
		return BytesOfMemory(0), fmt.Errorf("invalid JVM memory spec '%s'", spec)
	}
	if val > math.MaxInt64/multiplier {
		return BytesOfMemory(0), fmt.Errorf("JVM memory spec '%s' is too large", spec)
	}
	return BytesOfMemory(val * multiplier), nil
}
