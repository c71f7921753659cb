package pgnscan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alex65536/go-chess/chess"
)

type Ply struct {
	// MoveNumber is the full move number, as printed in PGN.
	MoveNumber int
	White      bool
	SAN        string
	// FEN is the position after the move.
	FEN string
}

func (p Ply) Side() string {
	if p.White {
		return "White"
	}
	return "Black"
}

func moveNumber(fen string) (int, bool) {
	fields := strings.Fields(fen)
	num := 1
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			num = n
		}
	}
	return num, len(fields) < 2 || fields[1] == "w"
}

// Plies replays the game and returns every half-move with the resulting position.
func (g *Game) Plies() ([]Ply, error) {
	game, err := g.Replay()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	board, err := chess.NewBoard(game.StartPos())
	if err != nil {
		return nil, fmt.Errorf("start board: %w", err)
	}
	plies := make([]Ply, 0, game.Len())
	for i := range game.Len() {
		num, white := moveNumber(board.FEN())
		_ = board.MakeLegalMove(game.MoveAt(i))
		plies = append(plies, Ply{
			MoveNumber: num,
			White:      white,
			SAN:        g.Moves[i],
			FEN:        board.FEN(),
		})
	}
	return plies, nil
}
