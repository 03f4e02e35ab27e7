// Package bus implements the synchronous publish/subscribe dispatcher at
// the heart of Captain.
//
// Commands are published as topics of the form "command:<name>"; converter
// modules attach handlers to those topics during registration. Publishing
// is fully synchronous: Publish invokes every handler for the topic on the
// calling goroutine, in registration order, and returns only after all of
// them ran. A failing handler is reported through the bus's error handler
// and never stops the remaining handlers or subsequent publishes.
//
// The bus is deliberately not safe for concurrent use. Captain runs
// single-threaded and registration never interleaves with publishing.
package bus

import (
	"fmt"
	"slices"
)

// TopicPrefix is the namespace commands are published under.
const TopicPrefix = "command:"

// CommandTopic returns the topic for a named command,
// e.g. CommandTopic("req") == "command:req".
func CommandTopic(name string) string {
	return TopicPrefix + name
}

// Handler processes a published payload. Returning an error reports the
// failure through the bus's error handler; it does not stop dispatch.
type Handler func(topic string, payload any) error

// ErrorHandler receives handler failures raised during Publish.
type ErrorHandler func(topic string, err error)

// Bus dispatches published payloads to subscribed handlers.
// Create instances with New; the zero value has no subscription table.
type Bus struct {
	handlers map[string][]Handler
	onError  ErrorHandler
}

// Option configures a Bus.
type Option func(*Bus)

// WithErrorHandler sets the callback invoked when a handler returns an
// error or panics. Without it, failures are silently discarded.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bus) { b.onError = h }
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{handlers: make(map[string][]Handler)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h under topic. Handlers run in registration order.
// Registering the same handler twice is not deduplicated: it runs once
// per registration on every publish.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish synchronously invokes every handler subscribed to topic, in
// registration order, passing (topic, payload) to each. It returns the
// number of handlers invoked; zero means nothing is subscribed and the
// publish was a no-op.
//
// A handler error or panic is reported to the error handler and dispatch
// continues with the next handler.
func (b *Bus) Publish(topic string, payload any) int {
	handlers := b.handlers[topic]
	for _, h := range handlers {
		b.dispatch(topic, payload, h)
	}
	return len(handlers)
}

// dispatch runs a single handler, converting panics and returned errors
// into error-handler reports.
func (b *Bus) dispatch(topic string, payload any, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.fail(topic, fmt.Errorf("%s: panic: %v", topic, r))
		}
	}()
	if err := h(topic, payload); err != nil {
		b.fail(topic, err)
	}
}

func (b *Bus) fail(topic string, err error) {
	if b.onError != nil {
		b.onError(topic, err)
	}
}

// HandlerCount returns the number of handlers subscribed to topic.
func (b *Bus) HandlerCount(topic string) int {
	return len(b.handlers[topic])
}

// Topics returns all topics with at least one subscription, sorted.
func (b *Bus) Topics() []string {
	topics := make([]string, 0, len(b.handlers))
	for topic := range b.handlers {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}
