// Command uriref parses, resolves, relativizes and normalizes URI references
// and splits raw header blocks.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd, opts := newRootCommand()
	if err := cmd.Execute(); err != nil {
		opts.logger().Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "uriref:", err)
		os.Exit(1)
	}
}
