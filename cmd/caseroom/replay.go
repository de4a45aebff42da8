package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/fixtures"
	"github.com/medflow-ai/caseroom/internal/shared/config"
	"github.com/medflow-ai/caseroom/internal/shared/errors"
	"github.com/medflow-ai/caseroom/internal/shared/logging"
	"github.com/medflow-ai/caseroom/internal/simulation"
)

// replayResult is the workspace after the script has played out.
type replayResult struct {
	Connection caseroom.ConnectionState `json:"connection"`
	Rooms      []caseroom.Room          `json:"rooms"`
	Archived   []caseroom.Room          `json:"archived"`
	Alerts     []caseroom.AlertFeedItem `json:"alerts"`
}

func runReplay(ctx context.Context, out io.Writer, speed float64) error {
	if speed <= 0 {
		return errors.BadRequest("speed must be positive")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// logs go to stderr so stdout stays valid JSON
	level := "info"
	if cfg, err := config.Load(); err == nil {
		level = cfg.Log.Level
	}
	logging.InitWithWriter(os.Stderr, serviceName, true, level)

	ws := caseroom.NewWorkspace(fixtures.Seed)
	injector := simulation.NewInjector(ws, nil, scaled(fixtures.ConnectDelay, speed))

	log.Info().Float64("speed", speed).Int("steps", len(simulation.DefaultScript())).Msg("replaying alert script")
	if err := injector.Replay(ctx, simulation.DefaultScript(), speed); err != nil {
		return errors.Wrap(err, "replay failed")
	}

	s := ws.Snapshot()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(replayResult{
		Connection: s.Connection,
		Rooms:      s.SortedRooms(),
		Archived:   s.Archived,
		Alerts:     s.Alerts,
	})
}

func scaled(d time.Duration, speed float64) time.Duration {
	return time.Duration(float64(d) / speed)
}
