package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rftidy/internal/transform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available transformers",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(os.Stdout, "Run `rftidy describe <name>` or `rftidy describe all` for detailed documentation.")
		fmt.Fprintln(os.Stdout, "Transformers tagged (disabled) run only when selected explicitly with --transform.")
		fmt.Fprintln(os.Stdout)
	}
	for _, desc := range transform.DefaultCatalog().Entries() {
		name := desc.Name
		if !desc.EnabledByDefault {
			name += " (disabled)"
		}
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
