package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Client publishes audit entries to a direct exchange and can tail them
// back from a bound queue.
type Client struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
}

// NewClient dials the broker and declares the exchange, the queue and the
// binding between them. The routing key is the queue name.
func NewClient(url, exchange, queue string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	c := &Client{conn: conn, ch: ch, exchange: exchange, queue: queue}
	if err := c.setup(); err != nil {
		c.Close()
		return nil, err
	}

	slog.Info("AMQP client connected", slog.String("exchange", exchange), slog.String("queue", queue))
	return c, nil
}

func (c *Client) setup() error {
	if err := c.ch.ExchangeDeclare(c.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.exchange, err)
	}
	if _, err := c.ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.queue, err)
	}
	if err := c.ch.QueueBind(c.queue, c.queue, c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", c.queue, err)
	}
	return nil
}

// PublishAuditLog sends one committed audit entry as a persistent JSON message.
func (c *Client) PublishAuditLog(ctx context.Context, log domain.AuditLog) error {
	body, err := encodeAuditLog(log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.ch.PublishWithContext(ctx, c.exchange, c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    log.AuditID,
		Timestamp:    log.CreatedAt,
		Type:         string(log.Entity) + "." + string(log.Action),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish audit log %s: %w", log.AuditID, err)
	}
	return nil
}

// ConsumeAuditLogs hands every queued audit entry to handle until ctx is
// cancelled. Entries the handler rejects are requeued once; undecodable
// messages are dropped.
func (c *Client) ConsumeAuditLogs(ctx context.Context, handle func(domain.AuditLog) error) error {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", c.queue)
			}
			entry, err := decodeAuditLog(d.Body)
			if err != nil {
				slog.Warn("Dropping undecodable audit message", slog.String("messageID", d.MessageId), slog.String("error", err.Error()))
				_ = d.Nack(false, false)
				continue
			}
			if err := handle(entry); err != nil {
				slog.Warn("Audit handler failed", slog.String("auditID", entry.AuditID), slog.String("error", err.Error()))
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func encodeAuditLog(log domain.AuditLog) ([]byte, error) {
	body, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit log %s: %w", log.AuditID, err)
	}
	return body, nil
}

func decodeAuditLog(body []byte) (domain.AuditLog, error) {
	var entry domain.AuditLog
	if err := json.Unmarshal(body, &entry); err != nil {
		return domain.AuditLog{}, err
	}
	if entry.AuditID == "" {
		return domain.AuditLog{}, fmt.Errorf("audit message has no auditID")
	}
	return entry, nil
}
