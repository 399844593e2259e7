package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/videre/internal/highlight"
	"github.com/zjrosen/videre/internal/presentation"
)

var stylesJSON bool

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List syntax highlighting styles",
	Long: `List the highlighting styles accepted by syntax.style and :colorscheme.
The configured style is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dtos := presentation.FromStyles(highlight.StyleNames(), cfg.Syntax.Style)
		f := presentation.NewFormatter(cmd.OutOrStdout())
		if stylesJSON {
			return f.FormatStyles(dtos)
		}
		return f.FormatStylesPlain(dtos)
	},
}

func init() {
	stylesCmd.Flags().BoolVar(&stylesJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(stylesCmd)
}
