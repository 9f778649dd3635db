package migration

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// NewMigrationCommand initializes command for migration
func NewMigrationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migration",
		Short: "Command to do migration activity",
		Long: heredoc.Doc(`
			Manage the database schema. The server applies pending migrations
			on start, these commands are for doing it ahead of a rollout or
			for undoing a bad one.`),
		Annotations: map[string]string{
			"group:other": "dev",
		},
	}
	cmd.AddCommand(
		NewUpCommand(),
		NewRollbackCommand(),
		NewVersionCommand(),
	)
	return cmd
}
