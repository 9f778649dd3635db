package utils

import (
	"fmt"
	"time"

	"github.com/goto/salt/log"
)

// Retry calls f up to retryMax times, doubling the wait after every failure
// starting at retryBackoffMs milliseconds. The last error is returned.
func Retry(l log.Logger, retryMax int, retryBackoffMs int64, f func() error) error {
	var err error
	wait := time.Duration(retryBackoffMs) * time.Millisecond

	for i := 0; i < retryMax; i++ {
		err = f()
		if err == nil {
			return nil
		}
		if i == retryMax-1 {
			break
		}

		l.Warn(fmt.Sprintf("retry: %d, error: %v", i, err))
		time.Sleep(wait)
		wait *= 2
	}

	return err
}
