package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DecisionApplier is the narrow surface of the post service the consumer
// needs. Business-level drops (unknown post, unknown decision) return nil;
// only infrastructure errors come back as errors.
type DecisionApplier interface {
	ApplyDecision(ctx context.Context, postID uuid.UUID, decision string) error
}

// DecisionConsumer is the single worker pulling decision events off the
// durable queue and applying them to posts. It runs on its own dispatch
// path, independent of the HTTP handlers.
type DecisionConsumer struct {
	url     string
	applier DecisionApplier
}

// NewDecisionConsumer creates a consumer for the review decisions queue.
func NewDecisionConsumer(url string, applier DecisionApplier) *DecisionConsumer {
	return &DecisionConsumer{url: url, applier: applier}
}

// Start consumes decision events until the context is cancelled,
// reconnecting on errors.
func (c *DecisionConsumer) Start(ctx context.Context) error {
	log.Printf("Starting decision consumer: queue=%s", DecisionsQueue)

	for {
		select {
		case <-ctx.Done():
			log.Println("Decision consumer shutting down")
			return ctx.Err()
		default:
			if err := c.consume(ctx); err != nil {
				log.Printf("Decision consumer connection error: %v. Retrying in 5s...", err)
				select {
				case <-time.After(5 * time.Second):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// consume connects, declares the broker topology and processes deliveries
// until the connection drops or the context is cancelled.
func (c *DecisionConsumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && closeErr != amqp.ErrClosed {
			log.Printf("Failed to close broker connection: %v", closeErr)
		}
	}()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(ReviewExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := channel.QueueDeclare(DecisionsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := channel.QueueBind(DecisionsQueue, PostReviewedKey, ReviewExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	// One unacked message at a time: decisions for the same post must not
	// race each other inside a single consumer.
	if err := channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	deliveries, err := channel.Consume(DecisionsQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	log.Printf("Connected to broker, consuming %s", DecisionsQueue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

// handleDelivery processes one decision event. Malformed payloads are acked
// and dropped (there is no dead-letter queue, redelivering them would loop
// forever); infrastructure failures are nacked for redelivery.
func (c *DecisionConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var event PostReviewedEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("Dropping malformed decision event: %v", err)
		c.ack(delivery)
		return
	}

	log.Printf("Received review decision for %s: %s", event.PostID, event.Decision)

	if err := c.applier.ApplyDecision(ctx, event.PostID, event.Decision); err != nil {
		log.Printf("Failed to apply decision for %s, requeueing: %v", event.PostID, err)
		if nackErr := delivery.Nack(false, true); nackErr != nil {
			log.Printf("Failed to nack delivery: %v", nackErr)
		}
		return
	}

	c.ack(delivery)
}

func (c *DecisionConsumer) ack(delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		log.Printf("Failed to ack delivery: %v", err)
	}
}
