// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"fmt"
)

const DefaultDebugPort = 8000

// JavaOptions are the JVM settings of one launched process.
type JavaOptions struct {
	MinHeapSize  string   `yaml:"min_heap_size,omitempty" json:"minHeapSize,omitempty"`
	MaxHeapSize  string   `yaml:"max_heap_size,omitempty" json:"maxHeapSize,omitempty"`
	MaxPermSize  string   `yaml:"max_perm_size,omitempty" json:"maxPermSize,omitempty"`
	TmpDir       string   `yaml:"tmp_dir,omitempty" json:"tmpDir,omitempty"`
	UserDir      string   `yaml:"user_dir,omitempty" json:"userDir,omitempty"`
	DebugJava    bool     `yaml:"debug_java,omitempty" json:"debugJava,omitempty"`
	DebugPort    int      `yaml:"debug_port,omitempty" json:"debugPort,omitempty"`
	DebugSuspend bool     `yaml:"debug_suspend,omitempty" json:"debugSuspend,omitempty"`
	JavaArgs     []string `yaml:"java_args,omitempty" json:"javaArgs,omitempty"`
}

// NewJavaOptions returns options with the defaults applied.
func NewJavaOptions() JavaOptions {
	return JavaOptions{DebugPort: DefaultDebugPort}
}

// Validate checks the memory sizes and the debug port.
func (o JavaOptions) Validate() error {
	sizes := []struct {
		name, value string
	}{
		{"min_heap_size", o.MinHeapSize},
		{"max_heap_size", o.MaxHeapSize},
		{"max_perm_size", o.MaxPermSize},
	}
	for _, s := range sizes {
		if s.value == "" {
			continue
		}
		if _, err := ParseJvmMemorySpec(s.value); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if o.MinHeapSize != "" && o.MaxHeapSize != "" {
		minHeap, _ := ParseJvmMemorySpec(o.MinHeapSize)
		maxHeap, _ := ParseJvmMemorySpec(o.MaxHeapSize)
		if minHeap.ToBytes() > maxHeap.ToBytes() {
			return fmt.Errorf("min_heap_size %s is larger than max_heap_size %s", o.MinHeapSize, o.MaxHeapSize)
		}
	}
	if o.DebugPort <= 0 || o.DebugPort > 65535 {
		return fmt.Errorf("debug_port must be between 1 and 65535, got %d", o.DebugPort)
	}
	return nil
}

func (o JavaOptions) debugAgentArg() string {
	suspend := "n"
	if o.DebugSuspend {
		suspend = "y"
	}
	return fmt.Sprintf("-agentlib:jdwp=server=y,transport=dt_socket,address=%d,suspend=%s", o.DebugPort, suspend)
}
