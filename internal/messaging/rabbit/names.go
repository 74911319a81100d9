// Package rabbit carries review decisions between the review service and
// the post service over a durable RabbitMQ topic exchange.
package rabbit

// Broker names shared by publisher and consumer. The queue is durable and
// bound to the exchange with the single routing key, giving at-least-once
// delivery of decision events.
const (
	ReviewExchange  = "review.exchange"
	PostReviewedKey = "post.reviewed"
	DecisionsQueue  = "review.decisions"
)
