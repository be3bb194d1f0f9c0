// Package events allows goroutines to register for and receive the node's
// operational events, such as mining progress and consensus decisions.
package events

import (
	"fmt"
	"sync"
)

// messageBuffer sizes each listener channel. A message is dropped for a
// listener that is not ready to receive, so the buffer gives a slow
// websocket writer time to catch up.
const messageBuffer = 100

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	mu sync.RWMutex
	m  map[string]chan string
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan string),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.m[id]; exists {
		return ch
	}

	evt.m[id] = make(chan string, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)

	return nil
}

// Send signals a message to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- s:
		default:
		}
	}
}
