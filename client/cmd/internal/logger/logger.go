package logger

import (
	"os"

	"github.com/goto/salt/log"
	"github.com/sirupsen/logrus"

	"github.com/goto/folio/config"
)

type plainFormatter int

func (*plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(entry.Message + "\n"), nil
}

// NewClientLogger prints bare messages, the client output is meant for humans
func NewClientLogger() log.Logger {
	return log.NewLogrus(
		log.LogrusWithLevel(config.LogLevelInfo.String()),
		log.LogrusWithWriter(os.Stdout),
		log.LogrusWithFormatter(new(plainFormatter)),
	)
}
