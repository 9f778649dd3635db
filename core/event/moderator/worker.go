package moderator

import (
	"context"
	"sync"
	"time"

	"github.com/goto/salt/log"
)

type Writer interface {
	Write(messages [][]byte) error
	Close() error
}

// Worker collects event messages and writes them in batches
type Worker struct {
	mu       sync.Mutex
	messages [][]byte

	source        <-chan []byte
	batchInterval time.Duration
	wg            sync.WaitGroup
	writer        Writer
	logger        log.Logger
}

func NewWorker(source <-chan []byte, writer Writer, batchInterval time.Duration, logger log.Logger) *Worker {
	w := &Worker{
		source:        source,
		batchInterval: batchInterval,
		writer:        writer,
		logger:        logger,
		messages:      make([][]byte, 0),
	}
	w.wg.Add(1)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.batchInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-w.source:
			w.mu.Lock()
			w.messages = append(w.messages, msg)
			w.mu.Unlock()
		case <-ticker.C:
			w.Flush()
		case <-ctx.Done():
			w.drain()
			w.Flush()
			return
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case msg := <-w.source:
			w.mu.Lock()
			w.messages = append(w.messages, msg)
			w.mu.Unlock()
		default:
			return
		}
	}
}

func (w *Worker) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.messages) == 0 {
		return
	}

	err := w.writer.Write(w.messages)
	if err != nil {
		w.logger.Error("error writing %d messages: %v", len(w.messages), err)
		return
	}
	w.messages = make([][]byte, 0)
}

func (w *Worker) Close() error {
	w.wg.Wait()
	return w.writer.Close()
}
