package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// retryHint tells EventSource clients how long to wait before
// reconnecting after a dropped stream.
const retryHint = "retry: 5000\n\n"

// frame renders the event in text/event-stream wire format.
func (e Event) frame() ([]byte, error) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", e.Type, data), nil
}

// ServeHTTP streams broker events to one client until the client
// disconnects or the broker shuts down.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported by this connection", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	_, _ = io.WriteString(w, retryHint)
	flusher.Flush()

	sub := b.Subscribe()
	if sub == nil { // broker already closed
		return
	}
	defer b.Unsubscribe(sub)

	done := r.Context().Done()
	for {
		select {
		case frame, open := <-sub:
			if !open {
				return
			}
			_, _ = w.Write(frame)
			flusher.Flush()
		case <-done:
			return
		}
	}
}
