// Package main writes a single markdown reference of every recipectl command.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/DeanGilewicz/serverless-recipes-BE/cmd/recipectl/cmd"
)

func main() {
	var outFile string
	flag.StringVar(&outFile, "out", "./docs/CLI.md", "output file for generated markdown")
	flag.Parse()

	if err := writeFile(outFile); err != nil {
		log.Fatalf("error: %s", err)
	}
	log.Printf("generated CLI documentation in %s", outFile)
}

func writeFile(outFile string) error {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	root := cmd.RootCmd()
	root.DisableAutoGenTag = true

	fmt.Fprintf(&buf, "# %s CLI Documentation\n\n", root.Name())
	if err := generateDocs(&buf, root, 2); err != nil {
		return err
	}

	return os.WriteFile(filepath.Clean(outFile), buf.Bytes(), 0o600)
}

// generateDocs writes a section for c and, one heading level deeper, each of its subcommands
// in name order.
func generateDocs(w io.Writer, c *cobra.Command, level int) error {
	if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
		return nil
	}

	fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", level), c.CommandPath())
	if c.Short != "" {
		fmt.Fprintf(w, "%s\n\n", c.Short)
	}
	if c.Long != "" && c.Long != c.Short {
		fmt.Fprintf(w, "%s\n\n", c.Long)
	}

	var md bytes.Buffer
	if err := doc.GenMarkdown(c, &md); err != nil {
		return fmt.Errorf("generating markdown for %s: %w", c.CommandPath(), err)
	}
	if options := optionsSection(md.String()); options != "" {
		fmt.Fprintf(w, "%s\n\n", options)
	}

	subcommands := c.Commands()
	slices.SortFunc(subcommands, func(a, b *cobra.Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	for _, sub := range subcommands {
		if err := generateDocs(w, sub, level+1); err != nil {
			return err
		}
	}
	return nil
}

// optionsSection extracts the "### Options" block cobra generates, up to the next heading.
func optionsSection(markdown string) string {
	const heading = "### Options"
	start := strings.Index(markdown, heading)
	if start < 0 {
		return ""
	}
	section := markdown[start:]
	if end := strings.Index(section[len(heading):], "\n### "); end >= 0 {
		section = section[:len(heading)+end]
	}
	return strings.TrimSpace(section)
}
