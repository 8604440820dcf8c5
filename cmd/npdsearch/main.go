// Command npdsearch runs one directory search from the command line and
// prints the settled result.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	os.Exit(execute())
}

func execute() int {
	rootCmd := newRootCmd(backendFactories)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
