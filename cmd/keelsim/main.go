// Command keelsim runs a small critter simulation on top of keel: a seeded
// field of wandering entities that drift, age and die over a fixed number of
// steps. Deterministic for a given seed.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"reflect"
	"time"

	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/fennwick/keel"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to simulation config (TOML)")
	flag.Parse()

	// 1. Load config
	cfg := defaults()
	if cfgPath != "" {
		loaded, err := load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// 3. Build the world: shared resources first, then the system tree
	w := keel.Factory.NewWorld(keel.WithLogger(log))
	keel.AddResource(w.Resources(), cfg)
	keel.AddResource(w.Resources(), rand.New(rand.NewSource(cfg.Sim.Seed)))
	keel.AddResource(w.Resources(), &tally{})

	for _, s := range []keel.System{
		&seeder{},
		&wander{},
		&movement{},
		&aging{},
		&reaper{},
	} {
		if err := w.AddSystem(s); err != nil {
			return fmt.Errorf("add system: %w", err)
		}
	}

	log.Info().
		Int64("seed", cfg.Sim.Seed).
		Int("count", cfg.Sim.Count).
		Int("steps", cfg.Sim.Steps).
		Msg("simulation starting")

	// 4. Run
	start := time.Now()
	for i := 0; i < cfg.Sim.Steps; i++ {
		w.Step()
	}

	// 5. Report
	alive := iter_util.Collect(w.EntitiesWith(
		reflect.TypeFor[Position](),
		reflect.TypeFor[keel.Active](),
	))
	t := keel.MustGetResource[*tally](w.Resources())
	log.Info().
		Int("spawned", t.Spawned).
		Int("reaped", t.Reaped).
		Int("alive", len(alive)).
		Uint64("steps", w.CurrentStep()).
		Dur("elapsed", time.Since(start)).
		Msg("simulation finished")

	// Ids come back ascending, so the first survivor is the eldest
	if len(alive) > 0 {
		e, err := w.Entity(alive[0])
		if err != nil {
			return err
		}
		name, _ := w.Name(e)
		pos, err := keel.GetComponent[Position](w, e)
		if err != nil {
			return err
		}
		log.Info().
			Str("name", name).
			Float64("x", pos.X).
			Float64("y", pos.Y).
			Msg("eldest survivor")
	}
	return nil
}

func newLogger(cfg LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
