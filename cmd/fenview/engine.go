package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/engine"
)

type engineFlags struct {
	name     *string
	config   *string
	moveTime *time.Duration
}

func addEngineFlags(cmd *cobra.Command) *engineFlags {
	p := cmd.Flags()
	return &engineFlags{
		name: p.StringP(
			"engine", "e", "",
			"UCI engine executable"),
		config: p.String(
			"engine-config", "",
			"TOML file with engine name, args and UCI options"),
		moveTime: p.DurationP(
			"movetime", "t", 500*time.Millisecond,
			"time to search each position"),
	}
}

func (f *engineFlags) enabled() bool {
	return *f.name != "" || *f.config != ""
}

func (f *engineFlags) options() (engine.Options, error) {
	var o engine.Options
	if *f.config != "" {
		raw, err := os.ReadFile(*f.config)
		if err != nil {
			return engine.Options{}, fmt.Errorf("read engine config: %w", err)
		}
		if err := toml.Unmarshal(raw, &o); err != nil {
			return engine.Options{}, fmt.Errorf("unmarshal engine config: %w", err)
		}
	}
	if *f.name != "" {
		o.Name = *f.name
	}
	return o, nil
}

// newEvaluator starts the engine pool. The returned function must be called to stop the engines.
func (f *engineFlags) newEvaluator(ctx context.Context, log *slog.Logger) (*engine.Evaluator, func(), error) {
	if *f.moveTime <= 0 {
		return nil, nil, fmt.Errorf("non-positive movetime")
	}
	o, err := f.options()
	if err != nil {
		return nil, nil, err
	}
	po, err := o.PoolOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("engine options: %w", err)
	}
	pool, err := engine.NewPool(ctx, log, po)
	if err != nil {
		return nil, nil, fmt.Errorf("start engine: %w", err)
	}
	log.Info("engine started", slog.String("engine", pool.Name()))
	ev := engine.NewEvaluator(pool, engine.EvalOptions{MoveTime: *f.moveTime})
	return ev, pool.Close, nil
}
