package publisher

// Publisher defines the interface for publishing price observations to
// downstream consumers
type Publisher interface {
	// Publish publishes an encoded observation keyed by product id
	Publish(productID string, message []byte) error

	// TrimStreams bounds the retained stream length
	TrimStreams() error

	// Close closes the publisher
	Close() error
}
