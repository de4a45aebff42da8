package simulation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/shared/events"
	"github.com/medflow-ai/caseroom/internal/shared/metrics"
)

// Injector folds events from a Source into the workspace and mirrors every
// applied alert to the event bus when one is configured.
type Injector struct {
	ws           *caseroom.Workspace
	pub          events.Publisher
	connectDelay time.Duration
	log          zerolog.Logger
}

// NewInjector creates an injector. pub may be nil.
func NewInjector(ws *caseroom.Workspace, pub events.Publisher, connectDelay time.Duration) *Injector {
	return &Injector{
		ws:           ws,
		pub:          pub,
		connectDelay: connectDelay,
		log:          log.With().Str("component", "injector").Logger(),
	}
}

// Run shows the feed as connecting, flips it to connected after the connect
// delay and applies events until the source is exhausted or ctx is done.
// An exhausted source leaves the feed connected. The source is closed on
// return.
func (i *Injector) Run(ctx context.Context, src Source) error {
	defer src.Close()

	i.ws.SetConnection(caseroom.ConnConnecting)
	metrics.SetFeedConnected(false)

	connect := sync.OnceFunc(func() {
		i.ws.SetConnection(caseroom.ConnConnected)
		metrics.SetFeedConnected(true)
		i.log.Info().Msg("feed connected")
	})
	connected := time.AfterFunc(i.connectDelay, func() {
		if ctx.Err() != nil {
			return
		}
		connect()
	})
	defer connected.Stop()

	for {
		ev, err := src.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrSourceExhausted):
			// a script that outran the connect delay still ends connected
			connected.Stop()
			connect()
			i.log.Info().Msg("feed exhausted")
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			i.log.Warn().Err(err).Msg("feed source failed")
			i.ws.SetConnection(caseroom.ConnDisconnected)
			metrics.SetFeedConnected(false)
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := i.Apply(ctx, ev); err != nil {
			i.log.Warn().Err(err).Str("alert_id", ev.Alert.ID).Msg("alert rejected")
		}
	}
}

// Apply injects one alert bundle, records metrics and publishes the mirror
// event. Publish failures are logged, not returned.
func (i *Injector) Apply(ctx context.Context, ev caseroom.AlertEvent) (caseroom.Change, error) {
	change, err := i.ws.Inject(ev)
	if err != nil {
		return caseroom.Change{}, err
	}

	metrics.RecordAlertInjected(string(ev.Alert.Domain), string(ev.Alert.Severity))
	metrics.RecordRoomActivation(change.RoomCreated)

	i.log.Info().
		Str("alert_id", ev.Alert.ID).
		Str("room_id", change.RoomID).
		Str("domain", string(ev.Alert.Domain)).
		Str("severity", string(ev.Alert.Severity)).
		Bool("room_created", change.RoomCreated).
		Msg("alert applied")

	if i.pub != nil {
		mirror := events.NewEvent(EventAlertApplied, EventSource, AppliedAlert{Event: ev, Change: change}).
			WithCorrelation(ev.Alert.ID)
		if err := i.pub.Publish(ctx, mirror); err != nil {
			i.log.Warn().Err(err).Str("alert_id", ev.Alert.ID).Msg("failed to publish applied alert")
		}
	}

	return change, nil
}

// Replay plays steps at speed against the workspace and returns when the
// script is over.
func (i *Injector) Replay(ctx context.Context, steps []Step, speed float64) error {
	return i.Run(ctx, NewScriptedSource(steps, speed))
}
