// Package main is the entry point for the hmsearch CLI, a thin
// wrapper over the hmsearch index library.
//
// Usage:
//
//	hmsearch init ./hashes.db --hash-bits 64 --max-error 6
//	hmsearch insert ./hashes.db 8f3b2a90d1c45e67
//	cat hashes.txt | hmsearch insert ./hashes.db --workers 4
//	hmsearch lookup ./hashes.db 8f3b2a90d1c45e66 --max-distance 2
//	hmsearch dump ./hashes.db
//	hmsearch export ./hashes.db backup.snap
//	hmsearch import ./copy.db backup.snap
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/hmsearch/cmd/hmsearch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
