package cmd

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/folio/client/cmd/diff"
	"github.com/goto/folio/client/cmd/toc"
	"github.com/goto/folio/client/cmd/version"
)

// New constructs the 'root' command. It houses all other sub commands
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio <command> <subcommand> [flags]",
		Short: "Blog publishing with revision history",
		Long: heredoc.Doc(`
			Folio serves a blog whose posts keep every revision.

			Run 'folio serve' to start the server, or use the offline
			tools to compare two drafts and preview a table of contents.`),
		SilenceUsage: true,
		Example: heredoc.Doc(`
			$ folio serve -c folio.yaml
			$ folio migration up -c folio.yaml
			$ folio diff draft-1.md draft-2.md
			$ folio toc draft.md
			$ folio version --with-server --host http://localhost:9100`),
		Annotations: map[string]string{
			"group:core": heredoc.Doc(`
				diff, toc, serve`),
		},
	}

	cmd.AddCommand(
		diff.NewDiffCommand(),
		toc.NewTOCCommand(),
		version.NewVersionCommand(),
	)
	return cmd
}
