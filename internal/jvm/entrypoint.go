// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrEntryPointNotFound is returned when no in-process entry point is registered under a main class name.
var ErrEntryPointNotFound = errors.New("no in-process entry point")

// Invocation is what an in-process entry point runs with.
type Invocation struct {
	Loader *Loader
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// MainFunc is an entry point that can run inside the gwtdev process instead of a forked JVM.
type MainFunc func(ctx context.Context, inv Invocation) error

// InvocationError reports a failed or panicking entry point.
type InvocationError struct {
	EntryPoint string
	Err        error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invocation of %s failed: %v", e.EntryPoint, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

var registry = struct {
	sync.RWMutex
	mains map[string]MainFunc
}{mains: make(map[string]MainFunc)}

// RegisterMain makes fn invocable in-process under mainClass. Registering a name twice panics.
func RegisterMain(mainClass string, fn MainFunc) {
	registry.Lock()
	defer registry.Unlock()
	if fn == nil {
		panic("jvm: RegisterMain with nil function")
	}
	if _, dup := registry.mains[mainClass]; dup {
		panic("jvm: RegisterMain called twice for " + mainClass)
	}
	registry.mains[mainClass] = fn
}

// RegisteredMains returns the names of all in-process entry points, sorted.
func RegisteredMains() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.mains))
	for name := range registry.mains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupMain(mainClass string) (MainFunc, bool) {
	registry.RLock()
	defer registry.RUnlock()
	fn, ok := registry.mains[mainClass]
	return fn, ok
}

func invoke(ctx context.Context, name string, fn MainFunc, inv Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{EntryPoint: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(ctx, inv); err != nil {
		return &InvocationError{EntryPoint: name, Err: err}
	}
	return nil
}
