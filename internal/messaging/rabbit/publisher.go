package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"Editorial/internal/core/reviews"
)

// DecisionPublisher publishes review decisions to the review exchange.
// It implements reviews.DecisionAnnouncer.
type DecisionPublisher struct {
	channel *amqp.Channel
}

// NewDecisionPublisher declares the topic exchange and returns a publisher
// bound to it. The caller owns the connection lifecycle.
func NewDecisionPublisher(conn *amqp.Connection) (*DecisionPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		ReviewExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ReviewExchange, err)
	}

	return &DecisionPublisher{channel: channel}, nil
}

// Announce publishes the decision as a persistent JSON message on the
// post.reviewed routing key.
func (p *DecisionPublisher) Announce(ctx context.Context, decision reviews.Decision) error {
	event := PostReviewedEvent{PostID: decision.PostID, Decision: decision.Outcome}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	log.Printf("Publishing review decision: postId=%s, decision=%s", event.PostID, event.Decision)

	err = p.channel.PublishWithContext(ctx,
		ReviewExchange,
		PostReviewedKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}
	return nil
}

// Close releases the underlying channel.
func (p *DecisionPublisher) Close() error {
	return p.channel.Close()
}
