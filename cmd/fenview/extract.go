package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/extract"
	"github.com/alex65536/fenview/internal/pgnscan"
	"github.com/alex65536/fenview/internal/util/signal"
	"github.com/alex65536/fenview/internal/util/style"
)

var extractCmd = &cobra.Command{
	Use:   "extract [games.pgn]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Build a dataset from positions with the given material",
	Long: `Build a dataset from positions with the given material.

For each game, the first position after a move where the pieces of each side
are exactly the given ones is written to the output. If an engine is given,
the positions are evaluated.

Material is written as piece letters, like "KRPPP" for white and "krppp" for
black. Each side must have exactly one king.
`,
}

// extractWatcher prints the progress. OnEvalFailed is called from several goroutines.
type extractWatcher struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *extractWatcher) OnGameScanned(_ int, m pgnscan.Match) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if m.Found {
		fmt.Fprintln(w.w, style.WithS("Found a position meeting the specified criteria.", 32, 1))
		fmt.Fprintln(w.w, "FEN of the position:", m.FEN)
		return
	}
	fmt.Fprintln(w.w, style.WithS("Game does not meet the specified criteria. Game URL:", 31, 1), m.Site)
}

func (w *extractWatcher) OnGameSkipped(index int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.w, "%v game #%v: %v\n", style.WithS("skipped", 33, 1), index+1, err)
}

func (w *extractWatcher) OnEvalFailed(m pgnscan.Match, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.w, "%v %v: %v\n", style.WithS("eval failed", 33, 1), m.Site, err)
}

func init() {
	p := extractCmd.Flags()
	white := p.String(
		"white", "KRPPP",
		"white pieces")
	black := p.String(
		"black", "krppp",
		"black pieces")
	output := p.StringP(
		"output", "o", "fen.txt",
		"dataset file (\"-\" for stdout)")
	jobs := p.IntP(
		"jobs", "j", max(1, runtime.NumCPU()/2),
		"number of positions to evaluate simultaneously")
	ef := addEngineFlags(extractCmd)

	extractCmd.RunE = func(cmd *cobra.Command, args []string) error {
		input := "games.pgn"
		if len(args) != 0 {
			input = args[0]
		}
		if *jobs <= 0 {
			return fmt.Errorf("non-positive jobs")
		}
		material, err := pgnscan.ParseMaterial(*white, *black)
		if err != nil {
			return fmt.Errorf("bad material: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		log := newLogger()

		in, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open games: %w", err)
		}
		defer in.Close()

		c := extract.Config{Watcher: &extractWatcher{w: stdout}}
		if ef.enabled() {
			ev, closeEngine, err := ef.newEvaluator(ctx, log)
			if err != nil {
				return err
			}
			defer closeEngine()
			c.Evaluator = ev
		}

		var out io.Writer = stdout
		if *output != "-" {
			f, err := os.Create(*output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		} else {
			// Keep stdout clean for the dataset.
			c.Watcher = &extractWatcher{w: stderr}
		}

		stats, err := extract.Run(ctx, in, out, extract.Options{
			Material: material,
			Jobs:     *jobs,
		}, c)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		fmt.Fprintf(stderr, "%v: %v games, %v positions found, %v games skipped\n",
			style.WithSE(material.String(), 1), stats.Games, stats.Found, stats.Skipped)
		return nil
	}
}
