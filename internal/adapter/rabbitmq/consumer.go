package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

const reconnectDelay = 5 * time.Second

type consumer struct {
	conn     Connection
	prefetch int
	logger   logger.Logger
}

func NewConsumer(conn Connection, prefetch int, log logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, prefetch: prefetch, logger: log}
}

func (c *consumer) ConsumeStoreEvents(ctx context.Context, handler interfaces.MessageHandler) error {
	return c.consumeWithReconnect(ctx, ExchangeStoreEvents, handler)
}

func (c *consumer) ConsumeAuthEvents(ctx context.Context, handler interfaces.MessageHandler) error {
	return c.consumeWithReconnect(ctx, ExchangeAuthEvents, handler)
}

// consumeWithReconnect keeps a subscription alive until ctx is cancelled.
func (c *consumer) consumeWithReconnect(ctx context.Context, exchange string, handler interfaces.MessageHandler) error {
	for {
		err := c.consumeFanout(ctx, exchange, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err == nil {
			return nil
		}

		c.logger.Warn("consumer_disconnected",
			fmt.Sprintf("Consumer for %s disconnected, reconnecting in %s", exchange, reconnectDelay),
			"", map[string]interface{}{"exchange": exchange}, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *consumer) consumeFanout(ctx context.Context, exchange string, handler interfaces.MessageHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Every instance gets its own copy of each event
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("consumer_started", fmt.Sprintf("Consuming %s", exchange), "",
		map[string]interface{}{"exchange": exchange, "queue": q.Name})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			// A broken event is dropped; redelivering it would fail the same way
			if err := handler(ctx, msg.Body); err != nil {
				msg.Nack(false, false)
			} else {
				msg.Ack(false)
			}
		}
	}
}
