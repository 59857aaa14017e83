// Package main implements the entry point for the Lumen API server, which
// generates lessons with their worksheets, flashcards, narration and diagrams.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
