package migration

import (
	"github.com/spf13/cobra"

	"github.com/goto/folio/config"
	"github.com/goto/folio/internal/store/postgres"
	"github.com/goto/folio/server"
)

type versionCommand struct {
	configFilePath string
}

// NewVersionCommand initializes command to print the current schema version
func NewVersionCommand() *cobra.Command {
	v := &versionCommand{}
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Command to print the current database schema version",
		Example: "folio migration version -c folio.yaml",
		RunE:    v.RunE,
	}
	cmd.Flags().StringVarP(&v.configFilePath, "config", "c", v.configFilePath, "File path for server configuration")
	return cmd
}

func (v *versionCommand) RunE(_ *cobra.Command, _ []string) error {
	conf, err := config.LoadServerConfig(v.configFilePath)
	if err != nil {
		return err
	}
	logger := server.NewLogger(conf.Log.Level.String())

	version, dirty, err := postgres.Version(conf.Serve.DB.DSN)
	if err != nil {
		return err
	}
	if dirty {
		logger.Warn("Schema version %d is dirty, a migration failed halfway", version)
		return nil
	}
	logger.Info("Schema version %d", version)
	return nil
}
