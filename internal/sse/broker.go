// Package sse implements a Server-Sent Events broker for real-time
// document change notifications.
package sse

import (
	"sync/atomic"
	"time"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// subscriber is one connected client's outbound queue. A full queue drops
// messages rather than stall the event loop.
type subscriber chan []byte

const subscriberBuffer = 64

type docEventReq struct {
	kind    string // created, updated or deleted
	path    string
	docKind string // record category, empty when unknown
}

// Broker manages SSE client connections and broadcasts events.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable
// state (clients + index throttle timestamp). Public methods communicate
// with this loop through channels, so no mutexes are required. The
// registration channels are unbuffered: a subscriber is either registered
// with the loop or sees the broker stop; it is never parked in a queue
// nobody drains.
type Broker struct {
	indexMin time.Duration

	subscribeCh   chan subscriber
	unsubscribeCh chan subscriber
	publishCh     chan Event
	docEventCh    chan docEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. indexThrottle caps how often the
// coarse index.updated event fires during bursts of document changes.
func NewBroker(indexThrottle time.Duration) *Broker {
	if indexThrottle <= 0 {
		indexThrottle = 2 * time.Second
	}

	b := &Broker{
		indexMin:      indexThrottle,
		subscribeCh:   make(chan subscriber),
		unsubscribeCh: make(chan subscriber),
		publishCh:     make(chan Event, 256),
		docEventCh:    make(chan docEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	subs := make(map[subscriber]struct{})
	var lastIndex time.Time

	broadcast := func(event Event) {
		raw, err := event.frame()
		if err != nil {
			return
		}
		for sub := range subs {
			select {
			case sub <- raw:
			default:
				// Queue full; this client misses the message.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for sub := range subs {
				close(sub)
			}
			return

		case sub := <-b.subscribeCh:
			subs[sub] = struct{}{}

		case sub := <-b.unsubscribeCh:
			if _, ok := subs[sub]; ok {
				delete(subs, sub)
				close(sub)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.docEventCh:
			switch req.kind {
			case "created", "updated", "deleted":
			default:
				continue
			}
			data := map[string]string{"path": req.path}
			if req.docKind != "" {
				data["kind"] = req.docKind
			}
			broadcast(Event{Type: "document." + req.kind, Data: data})

			now := time.Now()
			if now.Sub(lastIndex) >= b.indexMin {
				lastIndex = now
				broadcast(Event{Type: "index.updated", Data: map[string]string{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(subs)
		}
	}
}

// Close stops the event loop and closes every subscriber channel.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a new client and returns its message channel. After
// Close the returned channel is already closed.
func (b *Broker) Subscribe() subscriber {
	sub := make(subscriber, subscriberBuffer)
	if b.closed.Load() {
		close(sub)
		return sub
	}
	select {
	case b.subscribeCh <- sub:
	case <-b.stopped:
		close(sub)
	}
	return sub
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(sub subscriber) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- sub:
	case <-b.stopped:
	}
}

// ClientCount reports how many clients are connected.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish queues an event for broadcast to every connected client.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishDocumentEvent publishes a document change and a throttled
// index.updated event. kind is one of "created", "updated", "deleted";
// docKind, when non-empty, labels the record category in the payload.
func (b *Broker) PublishDocumentEvent(kind, path, docKind string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.docEventCh <- docEventReq{kind: kind, path: path, docKind: docKind}:
	case <-b.stopped:
	}
}
