// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package prog

import (
	"os"
	"sort"
	"strings"

	"github.com/putnami/gwtdev/internal/trace"
)

func (p *Spec) Setenv(k, v string) {
	p.Env[k] = v
}

// SetenvList sets every NAME=value binding in kvs.
func (p *Spec) SetenvList(kvs []string) {
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			trace.Trace("ignoring invalid environment binding:", kv)
			continue
		}
		p.Setenv(k, v)
	}
}

func (p *Spec) Getenv(k string) string {
	if v, ok := p.Env[k]; ok {
		return v
	}
	return os.Getenv(k)
}

// EffectiveEnv returns the environment of this process overlaid with the Spec bindings, sorted by name.
func (p *Spec) EffectiveEnv() []string {
	envMap := make(map[string]string)
	for _, kv := range os.Environ() {
		k, _, ok := strings.Cut(kv, "=")
		if !ok {
			trace.Trace("invalid entry in os.Environ():", kv)
			k = kv
		}
		envMap[k] = kv
	}
	for k, v := range p.Env {
		trace.Debug("add to environment:", k, "=", v)
		envMap[k] = k + "=" + v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	envVec := make([]string, 0, len(keys))
	for _, k := range keys {
		envVec = append(envVec, envMap[k])
	}
	return envVec
}

// ReadableEnv renders the Spec bindings as " k=v" pairs sorted by name.
func (p *Spec) ReadableEnv() string {
	keys := make([]string, 0, len(p.Env))
	for k := range p.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf strings.Builder
	for _, k := range keys {
		buf.WriteString(" ")
		buf.WriteString(k)
		buf.WriteString("=")
		buf.WriteString(p.Env[k])
	}
	return buf.String()
}
