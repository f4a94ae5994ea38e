// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"context"
	"fmt"
)

// FindResourcesMain is the main class of the built-in entry point that prints where each resource named in its
// arguments is found on the class path, and fails if any is missing. Without arguments it prints the class path.
const FindResourcesMain = "gwtdev.FindResources"

func init() {
	RegisterMain(FindResourcesMain, findResources)
}

func findResources(ctx context.Context, inv Invocation) error {
	if len(inv.Args) == 0 {
		for _, u := range inv.Loader.URLs() {
			fmt.Fprintln(inv.Stdout, u)
		}
		return nil
	}
	missing := 0
	for _, name := range inv.Args {
		if err := ctx.Err(); err != nil {
			return err
		}
		if location, ok := inv.Loader.Resource(name); ok {
			fmt.Fprintf(inv.Stdout, "%s\t%s\n", name, location)
		} else {
			fmt.Fprintf(inv.Stderr, "%s\tnot found\n", name)
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d resources not found", missing, len(inv.Args))
	}
	return nil
}
