package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenview/internal/extract"
	"github.com/alex65536/fenview/internal/pgnscan"
	"github.com/alex65536/fenview/internal/util/signal"
	"github.com/alex65536/fenview/internal/util/style"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze games.pgn",
	Args:  cobra.ExactArgs(1),
	Short: "Evaluate the moves of a game with a UCI engine",
}

func readGame(path string, index int) (*pgnscan.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open games: %w", err)
	}
	defer f.Close()
	r := pgnscan.NewReader(f)
	for i := 1; ; i++ {
		g, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("no game #%v, there are %v games", index, i-1)
			}
			return nil, fmt.Errorf("read game #%v: %w", i, err)
		}
		if i == index {
			return g, nil
		}
	}
}

func init() {
	p := analyzeCmd.Flags()
	gameIndex := p.IntP(
		"game", "g", 1,
		"number of the game in the file")
	fromMove := p.Int(
		"from", 1,
		"first move to analyze")
	toMove := p.Int(
		"to", 0,
		"last move to analyze (0 means until the end)")
	ef := addEngineFlags(analyzeCmd)

	analyzeCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !ef.enabled() {
			return fmt.Errorf("no engine given (use --engine or --engine-config)")
		}
		if *gameIndex <= 0 {
			return fmt.Errorf("non-positive game")
		}
		g, err := readGame(args[0], *gameIndex)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		log := newLogger()

		ev, closeEngine, err := ef.newEvaluator(ctx, log)
		if err != nil {
			return err
		}
		defer closeEngine()

		if site := g.Tag("Site"); site != "" {
			fmt.Fprintln(stdout, style.WithS(site, 4))
		}
		_, err = extract.Analyze(ctx, g, extract.AnalyzeOptions{
			FromMove: *fromMove,
			ToMove:   *toMove,
		}, ev, func(p extract.PlyEval) {
			fmt.Fprintf(stdout, "Move %v (%v): %v - Evaluation: %v\n",
				p.MoveNumber, p.Side(), style.WithS(p.SAN, 1), p.Score)
		})
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		return nil
	}
}
