// astraweaved is the reference host binary over the deterministic core:
// a small cobra CLI to drive a world headlessly (run), expose it over
// HTTP (serve), or check a config file without starting anything
// (validate-config).
package main

import (
	"fmt"
	"os"

	"github.com/astraweave/core/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
