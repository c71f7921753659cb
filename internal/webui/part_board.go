package webui

import (
	"github.com/alex65536/fenview/internal/boardview"
	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/sliceutil"
)

type boardSquareData struct {
	Name  string
	Glyph string
	White bool
	Color string
}

type boardPartData struct {
	FEN         string
	Orientation string
	Size        int
	SquareSize  int
	Rows        [][]boardSquareData
	Files       []string
	Ranks       []string
}

func buildBoardPartData(v posbrowser.View, size int, palette boardview.Palette) *boardPartData {
	fromBlack := v.Orientation.FromBlack()
	grid := boardview.ParsePlacement(v.BoardState)
	rows := sliceutil.Map(grid.Squares(fromBlack), func(row []boardview.Square) []boardSquareData {
		return sliceutil.Map(row, func(sq boardview.Square) boardSquareData {
			return boardSquareData{
				Name:  sq.Name,
				Glyph: sq.Piece.Glyph(),
				White: sq.Piece.IsWhite(),
				Color: palette.Square(sq.Dark),
			}
		})
	})
	return &boardPartData{
		FEN:         v.BoardState,
		Orientation: v.Orientation.String(),
		Size:        size,
		SquareSize:  size / 8,
		Rows:        rows,
		Files:       boardview.Files(fromBlack),
		Ranks:       boardview.Ranks(fromBlack),
	}
}
