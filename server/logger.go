package server

import (
	"os"

	"github.com/goto/salt/log"
)

func NewLogger(logLevel string) log.Logger {
	return log.NewLogrus(
		log.LogrusWithLevel(logLevel),
		log.LogrusWithWriter(os.Stdout),
	)
}
