package migration

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goto/folio/config"
	"github.com/goto/folio/internal/store/postgres"
	"github.com/goto/folio/server"
)

type rollbackCommand struct {
	configFilePath string
	count          int
}

// NewRollbackCommand initializes command for migration rollback
func NewRollbackCommand() *cobra.Command {
	rollback := &rollbackCommand{count: 1}
	cmd := &cobra.Command{
		Use:     "rollback",
		Short:   "Command to rollback the latest applied migrations",
		Example: "folio migration rollback -c folio.yaml --count 1",
		RunE:    rollback.RunE,
	}
	cmd.Flags().StringVarP(&rollback.configFilePath, "config", "c", rollback.configFilePath, "File path for server configuration")
	cmd.Flags().IntVar(&rollback.count, "count", rollback.count, "Number of migrations to roll back")
	return cmd
}

func (r *rollbackCommand) RunE(_ *cobra.Command, _ []string) error {
	conf, err := config.LoadServerConfig(r.configFilePath)
	if err != nil {
		return err
	}
	logger := server.NewLogger(conf.Log.Level.String())

	logger.Info("Executing migration rollback of %d step(s)", r.count)
	if err := postgres.Rollback(conf.Serve.DB.DSN, r.count); err != nil {
		return fmt.Errorf("error executing migration rollback: %w", err)
	}
	logger.Info("Migration rollback finished")
	return nil
}
