// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/putnami/gwtdev/internal/trace"
)

// Environment variables overriding the configuration file.
const (
	EnvJava         = "GWTDEV_JAVA"
	EnvReadyTimeout = "GWTDEV_READY_TIMEOUT"
	EnvOpenBrowser  = "GWTDEV_OPEN_BROWSER"
	EnvDebugPort    = "GWTDEV_DEBUG_PORT"
)

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvJava); v != "" {
		trace.Trace("java executable from", EnvJava+":", v)
		c.JavaExecutable = v
	}
	if v := getenv(EnvReadyTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvReadyTimeout, err)
		}
		c.ReadyTimeout = d
	}
	if v := getenv(EnvOpenBrowser); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvOpenBrowser, err)
		}
		c.OpenBrowser = b
	}
	if v := getenv(EnvDebugPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebugPort, err)
		}
		c.CodeServer.Java.DebugJava = true
		c.CodeServer.Java.DebugPort = port
	}
	return nil
}
