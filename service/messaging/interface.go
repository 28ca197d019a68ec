package messaging

import "context"

// Queue is an abstract message queue for any payload type.  The engine uses
// it to serialize ingestion commands and to fan out engine events; swapping
// the in-memory implementation for an external broker only requires
// implementing this pair of interfaces.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue, blocking until one
	// is available or the context is done.
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message.
	T() *T

	// Ack acknowledges successful processing of this message.
	Ack() error

	// Nack indicates failure in processing this message; depending on the
	// implementation the message is retried or dead-lettered.
	Nack(err error) error
}
