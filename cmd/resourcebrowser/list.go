package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexballas/resourcebrowser/browser"
)

var (
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	pathStyle  = lipgloss.NewStyle().Faint(true)
	countStyle = lipgloss.NewStyle().Bold(true)
)

func newListCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "Print the resources a filter query matches",
		Long: `Runs the same query the filter field does, with a trailing "*",
and prints each match with its display path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := buildSource(env.cfg)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			names, err := browser.NewFilter(src, env.cfg.Catalog.Extensions).Query(query)
			if err != nil {
				return err
			}
			env.log.Debug().Str("query", query).Int("matches", len(names)).Msg("list")
			printNames(cmd.OutOrStdout(), names, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printNames(w io.Writer, names []string, styled bool) {
	for _, name := range names {
		if styled {
			fmt.Fprintf(w, "%s  %s\n", nameStyle.Render(name), pathStyle.Render(browser.PathPrefix+name))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", name, browser.PathPrefix+name)
	}
	summary := fmt.Sprintf("%d resources", len(names))
	if styled {
		summary = countStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
}
