package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rftidy/internal/recommend"
	"rftidy/internal/transform"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name|all>",
	Short: "Show transformer documentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	name := args[0]
	catalog := transform.DefaultCatalog()
	if name == "all" {
		for _, desc := range catalog.Entries() {
			printDescription(desc)
		}
		return nil
	}
	desc, ok := catalog.Lookup(name)
	if !ok {
		similar := recommend.FindSimilar(name, catalog.Names())
		fmt.Fprintf(os.Stderr, "transformer with the name %q does not exist.%s\n", name, similar)
		return fmt.Errorf("unknown transformer %s", name)
	}
	printDescription(desc)
	return nil
}

func printDescription(desc transform.Descriptor) {
	fmt.Fprintf(os.Stdout, "Transformer %s:\n", desc.Name)
	fmt.Fprintln(os.Stdout, transform.StripMarkup(desc.Doc))
	fmt.Fprintln(os.Stdout)
}
