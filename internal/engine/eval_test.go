package engine

import (
	"testing"

	"github.com/alex65536/go-chess/chess"
	"github.com/alex65536/go-chess/uci"
	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "+0.35", FormatScore(uci.ScoreCentipawns(35)))
	assert.Equal(t, "-1.20", FormatScore(uci.ScoreCentipawns(-120)))
	assert.Equal(t, "+0.00", FormatScore(uci.ScoreCentipawns(0)))
	assert.Equal(t, "+M3", FormatScore(uci.ScoreMate(3)))
	assert.Equal(t, "-M2", FormatScore(uci.ScoreMate(-2)))
}

func TestWhiteScore(t *testing.T) {
	assert.Equal(t, "+0.50", FormatScore(WhiteScore(chess.ColorWhite, uci.ScoreCentipawns(50))))
	assert.Equal(t, "-0.50", FormatScore(WhiteScore(chess.ColorBlack, uci.ScoreCentipawns(50))))
	assert.Equal(t, "+M1", FormatScore(WhiteScore(chess.ColorBlack, uci.ScoreMate(-1))))
}
