package simulation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/shared/events"
)

// Source delivers alert bundles one at a time. Next blocks until an event
// is available, the source ends, or ctx is done.
type Source interface {
	Next(ctx context.Context) (caseroom.AlertEvent, error)
	Close() error
}

// ScriptedSource fires each step at its delay, relative to the first call to
// Next. One goroutine walks the steps in deadline order, so events come out
// in firing order at any speed; ties keep script order. Next must not be
// called concurrently.
type ScriptedSource struct {
	steps []Step
	speed float64

	startOnce sync.Once
	closeOnce sync.Once

	ready     chan caseroom.AlertEvent
	done      chan struct{}
	delivered int
}

// NewScriptedSource creates a source for steps. speed divides every delay;
// values <= 0 mean real time.
func NewScriptedSource(steps []Step, speed float64) *ScriptedSource {
	if speed <= 0 {
		speed = 1
	}
	ordered := append([]Step(nil), steps...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Delay < ordered[j].Delay })

	return &ScriptedSource{
		steps: ordered,
		speed: speed,
		ready: make(chan caseroom.AlertEvent, len(ordered)),
		done:  make(chan struct{}),
	}
}

func (s *ScriptedSource) start() {
	select {
	case <-s.done:
		return
	default:
	}
	go s.fire(time.Now())
}

func (s *ScriptedSource) fire(startedAt time.Time) {
	for _, step := range s.steps {
		deadline := startedAt.Add(time.Duration(float64(step.Delay) / s.speed))
		timer := time.NewTimer(time.Until(deadline))
		select {
		case <-s.done:
			timer.Stop()
			return
		case <-timer.C:
		}

		select {
		case <-s.done:
			return
		case s.ready <- step.Event:
		}
	}
}

// Next returns the next fired event.
func (s *ScriptedSource) Next(ctx context.Context) (caseroom.AlertEvent, error) {
	s.startOnce.Do(s.start)

	if s.delivered >= len(s.steps) {
		return caseroom.AlertEvent{}, ErrSourceExhausted
	}

	select {
	case <-ctx.Done():
		return caseroom.AlertEvent{}, ctx.Err()
	case <-s.done:
		return caseroom.AlertEvent{}, ErrSourceClosed
	case ev := <-s.ready:
		s.delivered++
		return ev, nil
	}
}

// Close stops the pending step.
func (s *ScriptedSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// BusSource delivers alert.raised events from the event bus.
type BusSource struct {
	events chan caseroom.AlertEvent
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
}

// NewBusSource subscribes to alert.raised on bus under consumerName.
func NewBusSource(ctx context.Context, bus events.EventBus, consumerName string) (*BusSource, error) {
	subCtx, cancel := context.WithCancel(ctx)
	src := &BusSource{
		events: make(chan caseroom.AlertEvent, 16),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	err := bus.Subscribe(subCtx, EventAlertRaised, consumerName, func(ctx context.Context, event events.Event) error {
		var ev caseroom.AlertEvent
		if err := events.DecodeData(event, &ev); err != nil {
			return err
		}
		select {
		case src.events <- ev:
			return nil
		case <-src.done:
			return ErrSourceClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		cancel()
		return nil, err
	}

	return src, nil
}

// Next returns the next alert raised on the bus.
func (b *BusSource) Next(ctx context.Context) (caseroom.AlertEvent, error) {
	select {
	case <-ctx.Done():
		return caseroom.AlertEvent{}, ctx.Err()
	case <-b.done:
		return caseroom.AlertEvent{}, ErrSourceClosed
	case ev := <-b.events:
		return ev, nil
	}
}

// Close cancels the subscription.
func (b *BusSource) Close() error {
	b.once.Do(func() {
		close(b.done)
		b.cancel()
	})
	return nil
}
