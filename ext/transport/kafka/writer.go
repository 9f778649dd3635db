package kafka

import (
	"context"
	"time"

	"github.com/goto/salt/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 10 * time.Second

var publishedEventsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "folio_events_published_total",
	Help: "Blog events published to kafka topic",
})

type Writer struct {
	writer *kafka.Writer
}

func NewWriter(brokerURLs []string, topic string, logger log.Logger) *Writer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokerURLs...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		Logger:                 kafka.LoggerFunc(logger.Debug),
		ErrorLogger:            kafka.LoggerFunc(logger.Error),
	}

	return &Writer{writer: writer}
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func (w *Writer) Write(messages [][]byte) error {
	kafkaMessages := make([]kafka.Message, len(messages))
	for i, m := range messages {
		kafkaMessages[i] = kafka.Message{Value: m}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := w.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		return err
	}
	publishedEventsCounter.Add(float64(len(messages)))
	return nil
}
