package mocks

import (
	"context"

	"taskpad/infras/kafka"
)

type noopProducer struct{}

// SendMessages implements kafka.Producer.
func (noopProducer) SendMessages(_ context.Context, _ string, _ ...kafka.Message) error {
	return nil
}

// NewProducer returns a producer that discards everything. Services publish
// events from detached goroutines, so tests use this instead of a gomock to
// avoid racing the controller shutdown.
func NewProducer() kafka.Producer {
	return noopProducer{}
}
