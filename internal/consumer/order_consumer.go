package consumer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/tradewire/bookfeed/internal/domain/ingest"
	v1 "github.com/tradewire/bookfeed/internal/domain/ingest/v1"
	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/errors"
	"github.com/tradewire/bookfeed/pkg/logger"
)

// OrderConsumer reads raw order events from the order-events topic and feeds
// them into the sequencer. Kafka partitioning by symbol upstream plus the
// per-symbol queues downstream keep symbol order intact end to end.
type OrderConsumer struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface

	sequencer ingest.Sequencer
	msgChan   chan kafka.Message
}

// NewOrderConsumer creates a new OrderConsumer.
func NewOrderConsumer(config config.OrderKafkaConfig, logger logger.Interface, sequencer ingest.Sequencer) *OrderConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &OrderConsumer{
		kafkaReader: kafkaReader,
		logger:      logger,
		sequencer:   sequencer,
		msgChan:     make(chan kafka.Message),
	}
}

// Start reads from the topic until ctx is cancelled.
func (c *OrderConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "order_consumer_stop",
			})
			close(c.msgChan)
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					close(c.msgChan)
					return
				}
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop closes the underlying reader.
func (c *OrderConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe drains the message channel, converting and submitting each raw
// event. Malformed and unknown-symbol events are logged and committed so
// they are never redelivered; only transient submit failures stay uncommitted.
func (c *OrderConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to order consumer", logger.Field{
		Key:   "action",
		Value: "order_consumer_subscribe",
	})

	for msg := range c.msgChan {
		if err := c.handleMessage(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_message",
			})
			continue
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *OrderConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var raw v1.RawOrderEvent
	if err := json.Unmarshal(msg.Value, &raw); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "unmarshal_order_event",
		})
		// Poison payload, commit and move on.
		return nil
	}

	event, err := raw.ToEvent()
	if err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "convert_order_event",
		})
		return nil
	}

	err = c.sequencer.Submit(ctx, event)
	switch {
	case err == nil:
		return nil
	case errors.IsCode(err, errors.MalformedEvent), errors.IsCode(err, errors.UnknownSymbol):
		c.logger.WarnContext(ctx, "rejected order event",
			logger.Field{Key: "symbol", Value: event.Symbol},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		return nil
	default:
		return err
	}
}
