// cmd/plannerctl/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	json bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Run travel planner operations locally and manage the activity registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	root.AddCommand(
		classifyCmd(opts),
		hotelCmd(opts),
		transportCmd(opts),
		budgetCmd(opts),
		itineraryCmd(opts),
		planCmd(opts),
		registryCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plannerctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plannerctl %s\n", version)
		},
	}
}

// emit prints v as indented JSON when --json is set, otherwise the text.
func emit(w io.Writer, opts *rootOptions, v interface{}, text string) error {
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func printStatus(w io.Writer, symbol, msg string, attr color.Attribute) {
	fmt.Fprintf(w, "%s %s\n", color.New(attr).Sprint(symbol), msg)
}
