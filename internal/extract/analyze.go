package extract

import (
	"context"
	"fmt"

	"github.com/alex65536/fenview/internal/pgnscan"
)

type AnalyzeOptions struct {
	// FromMove and ToMove bound the analyzed full moves, both inclusive. Zero ToMove means up to
	// the end of the game.
	FromMove int
	ToMove   int
}

type PlyEval struct {
	pgnscan.Ply
	Score string
}

// Analyze evaluates each position in the given move range of the game. onPly is called as soon
// as a position is evaluated and may be nil.
func Analyze(
	ctx context.Context,
	g *pgnscan.Game,
	o AnalyzeOptions,
	ev Evaluator,
	onPly func(PlyEval),
) ([]PlyEval, error) {
	if o.ToMove != 0 && o.ToMove < o.FromMove {
		return nil, fmt.Errorf("bad move range %d-%d", o.FromMove, o.ToMove)
	}
	plies, err := g.Plies()
	if err != nil {
		return nil, err
	}
	var res []PlyEval
	for _, p := range plies {
		if p.MoveNumber < o.FromMove {
			continue
		}
		if o.ToMove != 0 && p.MoveNumber > o.ToMove {
			break
		}
		score, err := ev.Eval(ctx, p.FEN)
		if err != nil {
			return res, fmt.Errorf("evaluate move %d (%v): %w", p.MoveNumber, p.SAN, err)
		}
		pe := PlyEval{Ply: p, Score: score}
		res = append(res, pe)
		if onPly != nil {
			onPly(pe)
		}
	}
	return res, nil
}
