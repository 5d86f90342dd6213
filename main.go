// main is the entry point for the basket CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sperez1989/basket/cmd"
	"github.com/sperez1989/basket/internal/iocache"
)

func main() {
	// Wire the global store manager into the command layer before
	// any command runs.
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
