package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/gatherly/events-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans outbound mail across a fixed set of workers, sharded by
// recipient so one recipient's messages keep their order. Delivery is
// best-effort: errors are logged and swallowed, and Enqueue never reports
// them back to the triggering request.
type Dispatcher struct {
	workers []chan ports.Mail
	mailer  Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Mail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. On ctx cancellation each worker
// drains what is already buffered in its channel, then stops.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(m ports.Mail) {
	d.workers[d.shardIndex(m.To)] <- m
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	for {
		select {
		case <-ctx.Done():
			d.drain(ch, id)
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(m, id)
		}
	}
}

// drain delivers whatever was buffered before shutdown. New Enqueue calls
// may still race in; anything beyond the snapshot taken here is dropped.
func (d *Dispatcher) drain(ch <-chan ports.Mail, id int) {
	for {
		select {
		case m := <-ch:
			d.deliver(m, id)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(m ports.Mail, id int) {
	if err := d.mailer.Send(m); err != nil {
		d.log.Error().Err(err).
			Str("to", m.To).
			Str("subject", m.Subject).
			Int("worker_id", id).
			Msg("email delivery failed")
	}
}
