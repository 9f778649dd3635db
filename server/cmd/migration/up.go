package migration

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goto/folio/config"
	"github.com/goto/folio/internal/store/postgres"
	"github.com/goto/folio/internal/telemetry"
	"github.com/goto/folio/server"
)

type upCommand struct {
	configFilePath string
}

// NewUpCommand initializes command for migration up
func NewUpCommand() *cobra.Command {
	up := &upCommand{}
	cmd := &cobra.Command{
		Use:     "up",
		Short:   "Command to migrate to the latest database schema",
		Example: "folio migration up -c folio.yaml",
		RunE:    up.RunE,
	}
	cmd.Flags().StringVarP(&up.configFilePath, "config", "c", up.configFilePath, "File path for server configuration")
	return cmd
}

func (u *upCommand) RunE(_ *cobra.Command, _ []string) error {
	conf, err := config.LoadServerConfig(u.configFilePath)
	if err != nil {
		return err
	}
	logger := server.NewLogger(conf.Log.Level.String())

	dsn := conf.Serve.DB.DSN
	logger.Info("Executing migration up")
	if err := postgres.Migrate(dsn); err != nil {
		return fmt.Errorf("error executing migration up: %w", err)
	}

	version, _, err := postgres.Version(dsn)
	if err != nil {
		return err
	}
	logger.Info("Migration up finished, schema version %d", version)

	telemetry.MetricServer = conf.Telemetry.MetricServerAddr
	if err := telemetry.SetGaugeViaPush("folio_schema_version", nil, float64(version)); err != nil {
		logger.Warn("unable to push schema version: %v", err)
	}
	return nil
}
