package present

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the number of findings a Dispatcher buffers.
const DefaultQueueSize = 64

// Dispatcher accepts findings from any goroutine and hands them to a sink
// Presenter on a single goroutine.
type Dispatcher struct {
	sink  Presenter
	queue chan Finding

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool

	dropped atomic.Uint64
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher. A queueSize <= 0 uses DefaultQueueSize.
func NewDispatcher(sink Presenter, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		sink:  sink,
		queue: make(chan Finding, queueSize),
	}
}

// SetLogger sets the logger for dropped findings. Must be called before Start.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

// Present enqueues f. If the queue is full the finding is dropped.
func (d *Dispatcher) Present(f Finding) {
	select {
	case d.queue <- f:
	default:
		n := d.dropped.Add(1)
		if d.logger != nil {
			d.logger.Warn("present: queue full, finding dropped",
				"channel", f.Channel, "source", f.Source, "dropped", n)
		}
	}
}

// Dropped returns the number of findings dropped so far.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Start begins delivering findings to the sink.
func (d *Dispatcher) Start() {
	if d.running.Swap(true) {
		return
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.wg.Add(1)
	go d.loop()
}

// Stop stops delivery after flushing findings already queued.
func (d *Dispatcher) Stop() {
	if !d.running.Swap(false) {
		return
	}

	d.cancel()
	d.wg.Wait()
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for {
		select {
		case f := <-d.queue:
			d.sink.Present(f)
		case <-d.ctx.Done():
			d.flush()
			return
		}
	}
}

func (d *Dispatcher) flush() {
	for {
		select {
		case f := <-d.queue:
			d.sink.Present(f)
		default:
			return
		}
	}
}
