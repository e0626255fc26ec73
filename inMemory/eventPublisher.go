package inMemory

import (
	"errors"
	"sync"

	rbac "github.com/paulvitic/rbac-admin"
)

var ErrPublisherClosed = errors.New("event publisher closed")

// EventPublisher fans every published event out to the current subscribers.
// A subscriber whose buffer is full misses the event instead of blocking the
// publisher.
type EventPublisher struct {
	bufferSize  int
	subscribers map[int]chan rbac.Event
	nextID      int
	closed      bool
	mu          sync.Mutex
}

func NewEventPublisher(bufferSize int) *EventPublisher {
	return &EventPublisher{
		bufferSize:  max(bufferSize, 1),
		subscribers: make(map[int]chan rbac.Event),
	}
}

// Subscribe returns a channel receiving events published from now on, and a
// function that removes the subscription and closes the channel.
func (p *EventPublisher) Subscribe() (<-chan rbac.Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	queue := make(chan rbac.Event, p.bufferSize)
	if p.closed {
		close(queue)
		return queue, func() {}
	}

	id := p.nextID
	p.nextID++
	p.subscribers[id] = queue

	var once sync.Once
	return queue, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if q, ok := p.subscribers[id]; ok {
				delete(p.subscribers, id)
				close(q)
			}
		})
	}
}

func (p *EventPublisher) Publish(event rbac.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	for _, queue := range p.subscribers {
		select {
		case queue <- event:
		default:
		}
	}
	return nil
}

// Close closes every subscriber channel. Later publishes fail.
func (p *EventPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	for id, queue := range p.subscribers {
		delete(p.subscribers, id)
		close(queue)
	}
}
