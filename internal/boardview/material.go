package boardview

import (
	"fmt"
	"strings"
)

// PieceOrder lists piece letters in the order used to print material.
const PieceOrder = "KQRBNP"

// Counts maps an upper-case piece letter to the number of such pieces.
type Counts [6]int

func pieceIndex(letter byte) int {
	return strings.IndexByte(PieceOrder, letter)
}

func (c Counts) Get(letter byte) int {
	idx := pieceIndex(letter)
	if idx < 0 {
		return 0
	}
	return c[idx]
}

func (c Counts) String() string {
	var b strings.Builder
	for i, n := range c {
		for range n {
			_ = b.WriteByte(PieceOrder[i])
		}
	}
	return b.String()
}

// ParseCounts parses strings like "KRPPP". Letter case is ignored.
func ParseCounts(s string) (Counts, error) {
	var c Counts
	for i := range len(s) {
		idx := pieceIndex(Piece(s[i]).Letter())
		if idx < 0 {
			return Counts{}, fmt.Errorf("bad piece %q at position %d", s[i], i+1)
		}
		c[idx]++
	}
	return c, nil
}

type Material struct {
	White Counts
	Black Counts
}

func (m Material) String() string {
	return m.White.String() + " vs " + strings.ToLower(m.Black.String())
}

func (g *Grid) Material() Material {
	var m Material
	for _, row := range g {
		for _, p := range row {
			if p == NoPiece {
				continue
			}
			idx := pieceIndex(p.Letter())
			if p.IsWhite() {
				m.White[idx]++
			} else {
				m.Black[idx]++
			}
		}
	}
	return m
}
