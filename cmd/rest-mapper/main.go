// Package main provides the CLI entrypoint for rest-mapper.
//
// rest-mapper reconciles the methods of a REST API resource with the methods
// of a REST client resource:
//   - Builds the method mapping from a persisted mapping, by copying onto an empty side, or by auto-matching
//   - Propagates the entities copied methods depend on
//   - Reports stale mappings, entity conflicts and incompatible pairs
//   - Imports OpenAPI 3 documents as API resources
package main

import (
	"errors"
	"fmt"
	"os"

	"rest-mapper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrCheckFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}
