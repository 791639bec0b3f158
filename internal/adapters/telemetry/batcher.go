// Package telemetry provides phase spans backed by OpenTelemetry.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the default buffer size (4KB) if not specified.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the default flush interval if not specified.
	DefaultTimeLimit = 250 * time.Millisecond
)

// LineBatcher buffers output and hands it to a callback in batches of
// complete lines. A batch is emitted when the buffer reaches sizeLimit or
// timeLimit elapses. A partial trailing line is held back until it is
// completed, grows past sizeLimit, or the batcher is closed.
// It is safe for concurrent use.
type LineBatcher struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewLineBatcher returns a new LineBatcher. Call Close to stop the
// background ticker and emit any remaining output.
func NewLineBatcher(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *LineBatcher {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	lb := &LineBatcher{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		stopCh:    make(chan struct{}),
	}

	lb.ticker = time.NewTicker(timeLimit)
	go lb.run()

	return lb
}

// Write appends p to the buffer, flushing complete lines once sizeLimit is reached.
func (lb *LineBatcher) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if lb.closed {
		return 0, errors.New("line batcher is closed")
	}

	n, _ := lb.buffer.Write(p)
	if lb.buffer.Len() >= lb.sizeLimit {
		lb.flushLocked(false)
		lb.ticker.Reset(lb.timeLimit)
	}
	return n, nil
}

// Flush emits every complete line currently buffered.
func (lb *LineBatcher) Flush() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.closed {
		return
	}
	lb.flushLocked(false)
}

// Close stops the background flusher and emits everything buffered.
func (lb *LineBatcher) Close() error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if lb.closed {
		return nil
	}

	lb.closed = true
	close(lb.stopCh)
	lb.flushLocked(true)
	return nil
}

func (lb *LineBatcher) run() {
	for {
		select {
		case <-lb.ticker.C:
			lb.Flush()
		case <-lb.stopCh:
			lb.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held.
func (lb *LineBatcher) flushLocked(all bool) {
	data := lb.buffer.Bytes()
	n := len(data)
	if !all {
		n = bytes.LastIndexByte(data, '\n') + 1
		if n == 0 && len(data) >= lb.sizeLimit {
			n = len(data)
		}
	}
	if n == 0 {
		return
	}

	chunk := bytes.Clone(data[:n])
	lb.buffer.Next(n)

	if lb.onFlush != nil {
		lb.onFlush(chunk)
	}
}
