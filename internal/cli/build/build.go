// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package build

// Version is set at link time with -ldflags "-X github.com/putnami/gwtdev/internal/cli/build.Version=...".
var Version string = "0.0.0-devel"
