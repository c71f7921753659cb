package pgnscan

import (
	"fmt"

	"github.com/alex65536/go-chess/chess"

	"github.com/alex65536/fenview/internal/boardview"
)

// Replay plays the moves of the game from its starting position.
func (g *Game) Replay() (*chess.Game, error) {
	game := chess.NewGame()
	if fen := g.Tags["FEN"]; fen != "" {
		board, err := chess.BoardFromFEN(fen)
		if err != nil {
			return nil, fmt.Errorf("parse start position: %w", err)
		}
		game = chess.NewGameWithPosition(board)
	}
	for i, san := range g.Moves {
		if err := game.PushMoveSAN(san); err != nil {
			return nil, fmt.Errorf("move %d (%q): %w", i+1, san, err)
		}
	}
	return game, nil
}

// ParseMaterial builds the criteria from piece lists like "KRPPP" and "krppp".
func ParseMaterial(white, black string) (boardview.Material, error) {
	var (
		m   boardview.Material
		err error
	)
	m.White, err = boardview.ParseCounts(white)
	if err != nil {
		return boardview.Material{}, fmt.Errorf("white: %w", err)
	}
	m.Black, err = boardview.ParseCounts(black)
	if err != nil {
		return boardview.Material{}, fmt.Errorf("black: %w", err)
	}
	if m.White.Get('K') != 1 || m.Black.Get('K') != 1 {
		return boardview.Material{}, fmt.Errorf("each side must have exactly one king")
	}
	return m, nil
}

type Match struct {
	Site  string
	Found bool
	FEN   string
	// Ply is the number of moves played before the matching position.
	Ply int
}

// Scan looks for the first position after a move where the pieces on the board are exactly
// the ones in want.
func Scan(g *Game, want boardview.Material) (Match, error) {
	m := Match{Site: g.Tag("Site")}
	if m.Site == "" {
		m.Site = "?"
	}
	game, err := g.Replay()
	if err != nil {
		return m, fmt.Errorf("replay: %w", err)
	}
	board, err := chess.NewBoard(game.StartPos())
	if err != nil {
		return m, fmt.Errorf("start board: %w", err)
	}
	for i := range game.Len() {
		_ = board.MakeLegalMove(game.MoveAt(i))
		fen := board.FEN()
		placement := boardview.ParsePlacement(fen)
		if placement.Material() == want {
			m.Found = true
			m.FEN = fen
			m.Ply = i + 1
			return m, nil
		}
	}
	return m, nil
}
