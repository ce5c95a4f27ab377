// Package notifier implements fire-and-forget email dispatch. Callers treat a
// successful enqueue as their completion signal; delivery happens on a worker
// pool and failures are logged, never propagated and never retried.
package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventsphere/events-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers one message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans messages out to a fixed pool of workers over a buffered
// channel. Notify never blocks: when the buffer is full the message is
// dropped. The one-time code in the store, not the email, is the source of
// truth, so a dropped delivery is recoverable by re-requesting.
type Dispatcher struct {
	queue   chan Message
	workers int
	mailer  Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers delivery workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		queue:   make(chan Message, channelBuffer),
		workers: numWorkers,
		mailer:  mailer,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Notify enqueues a message and returns immediately.
func (d *Dispatcher) Notify(recipient, subject, body string) {
	msg := Message{To: recipient, Subject: subject, HTML: body}
	select {
	case d.queue <- msg:
	default:
		metrics.EmailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("subject", subject).Msg("notification queue full, message dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-d.queue:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, msg); err != nil {
				metrics.EmailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("subject", msg.Subject).
					Int("worker_id", id).
					Msg("email delivery failed")
				continue
			}
			metrics.EmailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
