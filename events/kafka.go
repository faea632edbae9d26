package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go-bank-ledger/logger"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		// Delivery happens off the request path; failures surface through Completion.
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, msg := range messages {
				logger.Log.WithFields(logrus.Fields{
					"topic": msg.Topic,
					"key":   string(msg.Key),
				}).WithError(err).Error("Failed to deliver transaction event")
			}
		},
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Log.Debugf(msg, args...)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Log.Errorf(msg, args...)
		}),
	}
	return newKafkaPublisher(writer, topic)
}

func newKafkaPublisher(writer messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic, timeout: 10 * time.Second}
}

// Publish writes the event keyed by the owning account id, which keeps one account's events
// on one partition and therefore in commit order.
func (p *KafkaPublisher) Publish(ctx context.Context, event TransactionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode transaction event: %w", err)
	}

	key := strconv.FormatInt(event.Transaction.AccountID, 10)
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID.String())},
		},
	}

	produceCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(produceCtx, msg); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"topic":          p.topic,
			"key":            key,
			"transaction_id": event.Transaction.ID,
		}).WithError(err).Error("Failed to publish transaction event")
		return fmt.Errorf("failed to produce message to Kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	logger.Log.Info("Kafka producer closed")
	return nil
}
