package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alex65536/fenview/internal/boardview"
	"github.com/alex65536/fenview/internal/posbrowser"
)

var (
	whitePiece = lipgloss.Color("#ffffff")
	blackPiece = lipgloss.Color("#000000")
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// renderBoard draws the board with each square three cells wide.
func renderBoard(v posbrowser.View, palette boardview.Palette) string {
	fromBlack := v.Orientation.FromBlack()
	grid := boardview.ParsePlacement(v.BoardState)
	ranks := boardview.Ranks(fromBlack)

	var b strings.Builder
	for i, row := range grid.Squares(fromBlack) {
		_, _ = b.WriteString(labelStyle.Render(ranks[i] + " "))
		for _, sq := range row {
			st := lipgloss.NewStyle().Background(lipgloss.Color(palette.Square(sq.Dark)))
			if sq.Piece.IsWhite() {
				st = st.Foreground(whitePiece).Bold(true)
			} else {
				st = st.Foreground(blackPiece)
			}
			glyph := sq.Piece.Glyph()
			if glyph == "" {
				glyph = " "
			}
			_, _ = b.WriteString(st.Render(" " + glyph + " "))
		}
		_ = b.WriteByte('\n')
	}
	_, _ = b.WriteString("  ")
	for _, f := range boardview.Files(fromBlack) {
		_, _ = b.WriteString(labelStyle.Render(" " + f + " "))
	}
	return b.String()
}
