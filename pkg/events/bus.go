// Package events implements the process-wide publish/subscribe channel
// that keeps the shell's panels consistent without direct references to
// each other. The event set is closed: producers and consumers share
// the payload types defined in this package instead of ad hoc names.
package events

import (
	"sync"

	"github.com/hardcoreai/shell/logging"
	"github.com/sirupsen/logrus"
)

// Name identifies one of the cross-panel notification channels.
type Name string

const (
	// CodeGenerated carries freshly generated firmware to the editor.
	CodeGenerated Name = "code-generated"
	// PeripheralUpdate carries fresh peripheral counts after any config mutation.
	PeripheralUpdate Name = "peripheral-update"
	// FlashStart fires immediately before a flash request is issued.
	FlashStart Name = "flash-start"
	// FlashComplete fires exactly once after a started flash settles.
	FlashComplete Name = "flash-complete"
)

// CodeGeneratedPayload is the payload for CodeGenerated events.
type CodeGeneratedPayload struct {
	Code     string
	FileName string
}

// PeripheralCounts is the payload for PeripheralUpdate events. Counts
// only; the configuration store stays the source of truth for records.
type PeripheralCounts struct {
	GPIO   int
	I2C    int
	SPI    int
	UART   int
	Timers int
}

// FlashResult is the payload for FlashComplete events.
type FlashResult struct {
	Success bool
	Error   string
}

// Handler consumes a published payload. Handlers run synchronously on
// the publisher's goroutine.
type Handler func(payload interface{})

type subscription struct {
	name    Name
	handler Handler
}

// Bus delivers events synchronously to subscribers in subscription
// order, per event name. A panicking handler is isolated so delivery
// continues to the remaining subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[Name][]*subscription
	logger *logrus.Entry
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:   make(map[Name][]*subscription),
		logger: logging.NewLogger("event-bus"),
	}
}

// Subscribe registers a handler for an event name and returns its
// unsubscribe capability.
func (b *Bus) Subscribe(name Name, handler Handler) func() {
	sub := &subscription{name: name, handler: handler}

	b.mu.Lock()
	b.subs[name] = append(b.subs[name], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[name]
		for i, s := range list {
			if s == sub {
				b.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to all current subscribers of name, in
// subscription order. It never fails; handler panics are logged and
// swallowed.
func (b *Bus) Publish(name Name, payload interface{}) {
	b.mu.Lock()
	list := make([]*subscription, len(b.subs[name]))
	copy(list, b.subs[name])
	b.mu.Unlock()

	for _, sub := range list {
		b.deliver(sub, name, payload)
	}
}

func (b *Bus) deliver(sub *subscription, name Name, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(logrus.Fields{
				"event": string(name),
				"panic": r,
			}).Error("event handler panicked")
		}
	}()
	sub.handler(payload)
}
