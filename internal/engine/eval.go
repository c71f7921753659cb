package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/alex65536/go-chess/chess"
	"github.com/alex65536/go-chess/uci"
	"github.com/alex65536/go-chess/util/maybe"
)

type EvalOptions struct {
	MoveTime    time.Duration
	MaxWaitStop time.Duration
}

func (o *EvalOptions) FillDefaults() {
	if o.MoveTime == 0 {
		o.MoveTime = 500 * time.Millisecond
	}
	if o.MaxWaitStop == 0 {
		o.MaxWaitStop = 5 * time.Second
	}
}

type Evaluator struct {
	pool Pool
	o    EvalOptions
}

func NewEvaluator(pool Pool, o EvalOptions) *Evaluator {
	o.FillDefaults()
	return &Evaluator{pool: pool, o: o}
}

func invScore(s uci.Score) uci.Score {
	if cp, ok := s.Centipawns(); ok {
		return uci.ScoreCentipawns(-cp)
	}
	if m, ok := s.Mate(); ok {
		return uci.ScoreMate(-m)
	}
	panic("must not happen")
}

// FormatScore renders a score from White's point of view, like "+0.35" or "-M2".
func FormatScore(s uci.Score) string {
	if m, ok := s.Mate(); ok {
		if m < 0 {
			return fmt.Sprintf("-M%v", -m)
		}
		return fmt.Sprintf("+M%v", m)
	}
	cp, _ := s.Centipawns()
	return fmt.Sprintf("%+.2f", float64(cp)/100)
}

// WhiteScore converts a score reported for the side to move into White's point of view.
func WhiteScore(side chess.Color, s uci.Score) uci.Score {
	if side == chess.ColorBlack {
		return invScore(s)
	}
	return s
}

// Eval searches the position for a fixed time and returns the formatted score.
func (v *Evaluator) Eval(ctx context.Context, fen string) (string, error) {
	board, err := chess.BoardFromFEN(fen)
	if err != nil {
		return "", fmt.Errorf("parse fen: %w", err)
	}
	raw, err := chess.RawBoardFromFEN(fen)
	if err != nil {
		return "", fmt.Errorf("parse fen: %w", err)
	}
	game := chess.NewGameWithPosition(board)

	e, err := v.pool.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire engine: %w", err)
	}
	defer v.release(e)

	if err := e.UCINewGame(ctx, true); err != nil {
		return "", fmt.Errorf("ucinewgame: %w", err)
	}
	if err := e.SetPosition(ctx, game); err != nil {
		return "", fmt.Errorf("set position: %w", err)
	}
	search, err := e.Go(ctx, uci.GoOptions{
		Movetime: maybe.Some(v.o.MoveTime),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("go: %w", err)
	}
	if err := search.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait: %w", err)
	}
	score, ok := search.Status().Score.TryGet()
	if !ok {
		return "", fmt.Errorf("engine reported no score")
	}
	return FormatScore(WhiteScore(raw.Side, score)), nil
}

func (v *Evaluator) release(e *uci.Engine) {
	if e.Terminated() {
		return
	}
	if search := e.CurSearch(); search != nil {
		ctx, cancel := context.WithTimeout(context.Background(), v.o.MaxWaitStop)
		defer cancel()
		if err := search.Stop(ctx, true); err != nil {
			e.Close()
			return
		}
	}
	v.pool.Release(e)
}
