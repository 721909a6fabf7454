package messaging

import "context"

// NoopBroker discards every event. Used when eventing is disabled and
// in tests.
type NoopBroker struct{}

func NewNoopBroker() *NoopBroker {
	return &NoopBroker{}
}

func (b *NoopBroker) Publish(context.Context, string, interface{}) error {
	return nil
}

func (b *NoopBroker) Close() error {
	return nil
}
