// Package main is the entry point for the kvpfs CLI.
//
// Usage:
//
//	kvpfs [flags] <command> [args]
//
// Commands:
//
//	put         - Store a value under a key
//	get         - Print the value stored under a key
//	exists      - Report whether a key exists
//	del         - Remove a key
//	keys        - List the keys in a collection
//	collections - List collections
//	create      - Create collections
//	drop        - Drop a collection and all its records
package main

import (
	"fmt"
	"os"

	"github.com/kvpfs/kvpfs/cmd/kvpfs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
