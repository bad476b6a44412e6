// Command crowdsim runs the walker crowd simulation: a grid of drifting
// agents exercising the discrete-space occupancy index and its samplers,
// with optional run recording and a live WebSocket observer.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/talgya/crowdsim/internal/api"
	"github.com/talgya/crowdsim/internal/grid"
	"github.com/talgya/crowdsim/internal/model"
	"github.com/talgya/crowdsim/internal/persistence"
	"github.com/talgya/crowdsim/internal/space"
	"github.com/talgya/crowdsim/internal/walkers"
)

// tickFeed is the per-tick message recorded and broadcast to observers.
type tickFeed struct {
	Tick    uint64  `json:"tick"`
	Agents  int     `json:"agents"`
	Empty   int     `json:"empty"`
	Density float64 `json:"density"`
	Moves   int     `json:"moves"`
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "override the run seed (0 keeps the config value)")
	ticks := flag.Int("ticks", -1, "override the tick count (-1 keeps the config value)")
	listen := flag.String("listen", "", "override the observer address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	slog.Info("crowdsim starting",
		"seed", cfg.Seed,
		"grid", cfg.Width*cfg.Height,
		"fill", cfg.Fill,
		"ticks", cfg.Ticks,
	)

	// ── World ─────────────────────────────────────────────────────────
	g := grid.New(cfg.Width, cfg.Height)
	m := model.New[grid.Coord, *walkers.Walker](g, cfg.Seed)

	spawner := walkers.NewSpawner(cfg.Seed)
	spawned, err := spawner.Seed(m, g, walkers.SpawnConfig{
		Fill:     cfg.Fill,
		Restless: cfg.Restless,
	})
	if err != nil {
		slog.Error("failed to seed walkers", "error", err)
		os.Exit(1)
	}
	slog.Info("population seeded",
		"walkers", spawned,
		"restless", walkers.RestlessCount(m),
		"cells", g.NPositions(),
	)

	// ── Run log ───────────────────────────────────────────────────────
	var db *persistence.DB
	var runID int64
	if cfg.DBPath != "" {
		db, err = persistence.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open run log", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err = db.BeginRun(cfg.Seed, cfg.Width, cfg.Height, cfg.Fill, cfg.Cutoff)
		if err != nil {
			slog.Error("failed to begin run", "error", err)
			os.Exit(1)
		}
		slog.Info("run log opened", "path", cfg.DBPath, "run", runID)
	}

	// ── Observer ──────────────────────────────────────────────────────
	var obs *api.Observer
	if cfg.Listen != "" {
		obs = api.NewObserver()
		defer obs.Close()
		go func() {
			if err := obs.Serve(cfg.Listen); err != nil {
				slog.Error("observer stopped", "error", err)
			}
		}()
	}

	// ── Simulation loop ───────────────────────────────────────────────
	lastSteps := 0
	for tick := uint64(1); tick <= uint64(cfg.Ticks); tick++ {
		if err := walkers.Tick(m, g); err != nil {
			slog.Error("tick failed", "tick", tick, "error", err)
			os.Exit(1)
		}

		steps := totalSteps(m)
		feed := tickFeed{
			Tick:    tick,
			Agents:  m.NAgents(),
			Empty:   countEmpty(m),
			Density: float64(m.NAgents()) / float64(g.NPositions()),
			Moves:   steps - lastSteps,
		}
		lastSteps = steps

		if db != nil {
			err := db.RecordTick(persistence.TickStats{
				RunID:          runID,
				Tick:           feed.Tick,
				Agents:         feed.Agents,
				EmptyPositions: feed.Empty,
				Density:        feed.Density,
				Moves:          feed.Moves,
			})
			if err != nil {
				slog.Error("failed to record tick", "tick", tick, "error", err)
				os.Exit(1)
			}
		}
		if obs != nil {
			obs.Broadcast(feed)
		}
		if cfg.LogEvery > 0 && tick%uint64(cfg.LogEvery) == 0 {
			slog.Info("tick",
				"tick", tick,
				"empty", feed.Empty,
				"moves", feed.Moves,
			)
		}
	}

	reportCrowding(m)
	slog.Info("crowdsim finished", "ticks", cfg.Ticks, "total_moves", lastSteps)
}

func countEmpty(m *walkers.Model) int {
	n := 0
	for range space.EmptyPositions(m) {
		n++
	}
	return n
}

func totalSteps(m *walkers.Model) int {
	n := 0
	for w := range m.Agents() {
		n += w.Steps
	}
	return n
}

// reportCrowding logs the most crowded cells at the end of the run.
func reportCrowding(m *walkers.Model) {
	byPop, err := space.PositionsBy(m, space.SortPopulation)
	if err != nil {
		slog.Error("crowding report failed", "error", err)
		return
	}
	top := byPop
	if len(top) > 5 {
		top = top[:5]
	}
	for _, pos := range top {
		ids, err := m.Space().IDsAt(pos)
		if err != nil {
			continue
		}
		if len(ids) == 0 {
			break
		}
		slog.Info("crowded cell", "pos", pos, "walkers", len(ids))
	}
}
