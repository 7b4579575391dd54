package midi

import (
	"sync"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
)

// subscriptionBuffer is the capacity of every Subscribe channel.
const subscriptionBuffer = 100

type subscription struct {
	filters []event.Filter
	c       chan contracts.TimedEvent
	dropped int
}

func (s *subscription) match(e event.Event) bool {
	for _, f := range s.filters {
		if !f.Match(e) {
			return false
		}
	}
	return true
}

// dispatcher fans decoded events out to subscribers without blocking the
// packet loop. A full subscriber loses the event.
type dispatcher struct {
	logger contracts.Logger

	mu     sync.Mutex
	subs   []*subscription
	closed bool
}

func (d *dispatcher) subscribe(filters ...event.Filter) <-chan contracts.TimedEvent {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := make(chan contracts.TimedEvent, subscriptionBuffer)
	if d.closed {
		close(c)
		return c
	}
	d.subs = append(d.subs, &subscription{filters: filters, c: c})
	return c
}

func (d *dispatcher) dispatch(te contracts.TimedEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, s := range d.subs {
		if !s.match(te.Event) {
			continue
		}
		select {
		case s.c <- te:
		default:
			s.dropped++
			d.logger.Warn("Subscriber full; dropping event",
				d.logger.Field().Int("subscriber", i),
				d.logger.Field().String("event", te.Event.String()),
				d.logger.Field().Int("dropped", s.dropped))
		}
	}
}

func (d *dispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	for _, s := range d.subs {
		close(s.c)
	}
	d.subs = nil
}
