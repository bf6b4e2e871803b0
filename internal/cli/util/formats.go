package util

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go2opsin/go2opsin/internal/cli/shared"
	"github.com/go2opsin/go2opsin/internal/opsin"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats [query]",
		Short: "List the output formats OPSIN supports",
		Long: `List the output formats OPSIN supports with the command-line flag each one maps to.

With a query, only formats fuzzily matching it are shown, best match first.`,
		Example: `  # All formats
  go2opsin formats

  # Formats matching "inchi"
  go2opsin formats inchi`,
		GroupID: shared.GroupInfo,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := opsin.Formats()
			if len(args) == 1 {
				infos = filterFormats(args[0], infos)
				if len(infos) == 0 {
					return shared.WithExitCode(shared.ExitInvalidArguments,
						fmt.Errorf("no output format matches %q", args[0]))
				}
			}
			return printFormats(cmd.OutOrStdout(), infos)
		},
	}
}

// filterFormats returns the formats whose names fuzzily match query, best first.
func filterFormats(query string, infos []opsin.FormatInfo) []opsin.FormatInfo {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Format.String()
	}
	var out []opsin.FormatInfo
	for _, match := range fuzzy.Find(query, names) {
		out = append(out, infos[match.Index])
	}
	return out
}

func printFormats(w io.Writer, infos []opsin.FormatInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tFLAG\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Format, info.Flag, info.Description)
	}
	return tw.Flush()
}
