package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaProducer writes JSON payloads to a single topic.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) Enqueue(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Time:  time.Now(),
	})
}

func (p *KafkaProducer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// KafkaConsumer reads one topic within a consumer group. Offsets are
// committed after the handler runs, so a crash mid-job leaves the message
// to be redelivered on restart. A handler error does not hold the offset
// back: committing any later message would mark the failed one consumed
// anyway, so failed jobs are committed explicitly and logged with their
// payload for operator replay.
type KafkaConsumer struct {
	reader *kafka.Reader
	logger *zap.SugaredLogger
}

func NewKafkaConsumer(brokers []string, topic, groupID string, logger *zap.SugaredLogger) *KafkaConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &KafkaConsumer{reader: r, logger: logger}
}

func (c *KafkaConsumer) Run(ctx context.Context, h HandlerFunc) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("kafka fetch error: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if err := h(ctx, string(m.Key), m.Value); err != nil {
			c.logger.Errorw("job dead-lettered",
				"topic", m.Topic, "offset", m.Offset,
				"key", string(m.Key), "payload", string(m.Value),
				"error", err)
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Errorf("kafka commit error: %v", err)
		}
	}
}

func (c *KafkaConsumer) Close() error {
	if c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
