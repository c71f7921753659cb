package extract

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/alex65536/fenview/internal/boardview"
	"github.com/alex65536/fenview/internal/pgnscan"
	"github.com/alex65536/fenview/internal/posbrowser"
)

type Evaluator interface {
	Eval(ctx context.Context, fen string) (string, error)
}

type Options struct {
	Material boardview.Material
	// Number of positions evaluated simultaneously. Zero means one.
	Jobs int
}

func (o *Options) FillDefaults() {
	if o.Jobs <= 0 {
		o.Jobs = 1
	}
}

type Watcher interface {
	OnGameScanned(index int, m pgnscan.Match)
	OnGameSkipped(index int, err error)
	OnEvalFailed(m pgnscan.Match, err error)
}

type Config struct {
	// Nil means that positions are written without scores.
	Evaluator Evaluator
	Watcher   Watcher
}

type Stats struct {
	Games   int
	Found   int
	Skipped int
}

type found struct {
	match pgnscan.Match
	score string
}

// Run scans all the games from r and writes the matching positions to w in the dataset format,
// one line per game that has a match, in the order of games.
func Run(ctx context.Context, r io.Reader, w io.Writer, o Options, c Config) (Stats, error) {
	o.FillDefaults()

	var (
		stats Stats
		items []*found
	)
	pr := pgnscan.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		game, err := pr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var gameErr *pgnscan.GameError
			if !errors.As(err, &gameErr) {
				return stats, fmt.Errorf("read game %d: %w", stats.Games+1, err)
			}
		}
		idx := stats.Games
		stats.Games++
		var m pgnscan.Match
		if err == nil {
			m, err = pgnscan.Scan(game, o.Material)
		}
		if err != nil {
			stats.Skipped++
			if c.Watcher != nil {
				c.Watcher.OnGameSkipped(idx, err)
			}
			continue
		}
		if c.Watcher != nil {
			c.Watcher.OnGameScanned(idx, m)
		}
		if m.Found {
			stats.Found++
			items = append(items, &found{match: m})
		}
	}

	if c.Evaluator != nil {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(o.Jobs)
		for _, item := range items {
			eg.Go(func() error {
				score, err := c.Evaluator.Eval(gctx, item.match.FEN)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					if c.Watcher != nil {
						c.Watcher.OnEvalFailed(item.match, err)
					}
					return nil
				}
				item.score = score
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return stats, fmt.Errorf("evaluate: %w", err)
		}
	}

	bw := bufio.NewWriter(w)
	for _, item := range items {
		data, err := json.Marshal(posbrowser.Record{
			BoardState: item.match.FEN,
			Score:      item.score,
		})
		if err != nil {
			return stats, fmt.Errorf("marshal: %w", err)
		}
		_, _ = bw.Write(data)
		_ = bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("write: %w", err)
	}
	return stats, nil
}
