// Command docgen renders the touchgate command tree as reference docs.
//
//	go run ./cmd/docgen                     # docs/cli-reference.md
//	go run ./cmd/docgen docs/touchgate.1    # man page, picked by extension
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"

	"github.com/colonyops/touchgate/internal/commands"
)

const defaultOut = "docs/cli-reference.md"

func main() {
	out := defaultOut
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	if err := generate(out); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n", out)
}

func generate(out string) error {
	root := commands.NewRoot(&commands.Flags{})

	render := docs.ToMarkdown
	if filepath.Ext(out) == ".1" {
		render = docs.ToMan
	}

	body, err := render(root)
	if err != nil {
		return fmt.Errorf("render %s: %w", out, err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte(body), 0o644)
}
