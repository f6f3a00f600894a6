package core

import "strings"

// queueKeys holds the twelve store keys derived from a (prefix, name) pair.
// Naming follows spec.md §6: "<prefix>:<name>" for the queue list itself,
// "<prefix>:<name>:<suffix>" for everything else.
type queueKeys struct {
	queue        string
	bound        string
	producer     string
	consumer     string
	producerFree string
	consumerFree string
	notFull      string
	closed       string

	statsProducedMessages string
	statsProducedBytes    string
	statsConsumedMessages string
	statsConsumedBytes    string
}

// newQueueKeys derives the key set for a queue named name under prefix.
func newQueueKeys(prefix, name string) queueKeys {
	base := strings.Join([]string{prefix, name}, ":")
	suffixed := func(suffix string) string {
		return strings.Join([]string{base, suffix}, ":")
	}
	return queueKeys{
		queue:        base,
		bound:        suffixed("bound"),
		producer:     suffixed("producer"),
		consumer:     suffixed("consumer"),
		producerFree: suffixed("producer_free"),
		consumerFree: suffixed("consumer_free"),
		notFull:      suffixed("not_full"),
		closed:       suffixed("closed"),

		statsProducedMessages: suffixed("stats:produced_messages"),
		statsProducedBytes:    suffixed("stats:produced_bytes"),
		statsConsumedMessages: suffixed("stats:consumed_messages"),
		statsConsumedBytes:    suffixed("stats:consumed_bytes"),
	}
}

// processingKey returns the sidecar list used by ReliableQueue to hold the
// single in-flight, unconfirmed element.
func (k queueKeys) processingKey() string {
	return k.queue + ":processing"
}
