// Package boardview draws board positions. It reads only the piece placement part of a FEN
// string and never checks whether the position is legal.
package boardview

import (
	"strings"
)

// Piece is a FEN piece letter, or zero for an empty square.
type Piece byte

const NoPiece Piece = 0

var glyphs = map[Piece]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
}

func (p Piece) Valid() bool {
	_, ok := glyphs[p]
	return ok
}

func (p Piece) IsWhite() bool { return 'A' <= p && p <= 'Z' }

func (p Piece) Glyph() string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return ""
}

// Letter returns the upper-case piece letter.
func (p Piece) Letter() byte {
	if 'a' <= p && p <= 'z' {
		return byte(p - 'a' + 'A')
	}
	return byte(p)
}

// Grid holds the pieces, Grid[0] is rank 8 and Grid[0][0] is a8.
type Grid [8][8]Piece

// ParsePlacement fills the grid from the first field of boardState. Parsing stops at the first
// malformed rank, leaving the rest of the board empty.
func ParsePlacement(boardState string) Grid {
	var g Grid
	fields := strings.Fields(boardState)
	if len(fields) == 0 {
		return g
	}
	ranks := strings.Split(fields[0], "/")
	for r, rank := range ranks {
		if r >= 8 {
			break
		}
		f := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case '1' <= c && c <= '8':
				f += int(c - '0')
			case Piece(c).Valid():
				if f < 8 {
					g[r][f] = Piece(c)
				}
				f++
			default:
				return g
			}
			if f > 8 {
				g[r] = [8]Piece{}
				return g
			}
		}
	}
	return g
}

type Square struct {
	Name  string
	Piece Piece
	Dark  bool
}

// Squares returns the rows of the board from top to bottom as seen by the player. If fromBlack
// is set, black pieces are at the bottom.
func (g *Grid) Squares(fromBlack bool) [][]Square {
	rows := make([][]Square, 8)
	for i := range 8 {
		row := make([]Square, 8)
		for j := range 8 {
			r, f := i, j
			if fromBlack {
				r, f = 7-i, 7-j
			}
			row[j] = Square{
				Name:  string([]byte{byte('a' + f), byte('8' - r)}),
				Piece: g[r][f],
				Dark:  (r+f)%2 == 1,
			}
		}
		rows[i] = row
	}
	return rows
}

// Files returns the file letters in the order they are drawn.
func Files(fromBlack bool) []string {
	res := make([]string, 8)
	for i := range 8 {
		f := i
		if fromBlack {
			f = 7 - i
		}
		res[i] = string(rune('a' + f))
	}
	return res
}

// Ranks returns the rank digits in the order they are drawn, from top to bottom.
func Ranks(fromBlack bool) []string {
	res := make([]string, 8)
	for i := range 8 {
		r := 8 - i
		if fromBlack {
			r = i + 1
		}
		res[i] = string(rune('0' + r))
	}
	return res
}
