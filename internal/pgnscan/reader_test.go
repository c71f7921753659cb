package pgnscan

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoGames = `[Event "Rated Blitz game"]
[Site "https://lichess.org/aaaa"]
[White "alice"]
[Black "bob \"the rook\""]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6?? { [%clk 0:02:55] } 4. Qxf7# 1-0


[Event "Casual game"]
[Site "https://lichess.org/bbbb"]
[Result "*"]

1. d4 (1. e4 e5 (1... c5)) 1... d5 $1 2.c4 ; the queen's gambit
2... e6 *
`

func TestReaderGames(t *testing.T) {
	r := NewReader(strings.NewReader(twoGames))

	g, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://lichess.org/aaaa", g.Tag("Site"))
	assert.Equal(t, `bob "the rook"`, g.Tag("Black"))
	assert.Equal(t, []string{"e4", "e5", "Bc4", "Nc6", "Qh5", "Nf6", "Qxf7#"}, g.Moves)
	assert.Equal(t, "1-0", g.Result)

	g, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://lichess.org/bbbb", g.Tag("Site"))
	assert.Equal(t, []string{"d4", "d5", "c4", "e6"}, g.Moves)
	assert.Equal(t, "*", g.Result)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReaderEmpty(t *testing.T) {
	_, err := NewReader(strings.NewReader("\n\n  \n")).Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderBadTag(t *testing.T) {
	_, err := NewReader(strings.NewReader("[Event unquoted]\n\n1. e4 *\n")).Next()
	var gameErr *GameError
	require.ErrorAs(t, err, &gameErr)
	assert.Equal(t, 3, gameErr.Line)
}

func TestReaderSkipsBadGame(t *testing.T) {
	for _, bad := range []string{
		"[Site \"a\"]\n\n1. e4 ) e5 *\n\n",
		"[Site \"a\"]\n[Event broken]\n\n1. e4 e5 *\n\n",
	} {
		r := NewReader(strings.NewReader(bad + twoGames))

		_, err := r.Next()
		var gameErr *GameError
		require.ErrorAs(t, err, &gameErr, "input %q", bad)
		assert.Equal(t, "a", gameErr.Game.Tag("Site"))

		g, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, "https://lichess.org/aaaa", g.Tag("Site"))
		assert.Len(t, g.Moves, 7)

		g, err = r.Next()
		require.NoError(t, err)
		assert.Equal(t, "https://lichess.org/bbbb", g.Tag("Site"))

		_, err = r.Next()
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestReaderMultilineComment(t *testing.T) {
	pgn := "[Site \"x\"]\n\n1. e4 { a comment\n[not a tag] } e5 *\n"
	g, err := NewReader(strings.NewReader(pgn)).Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"e4", "e5"}, g.Moves)
}

func TestParseMovetextErrors(t *testing.T) {
	_, _, err := parseMovetext("1. e4 { open")
	assert.Error(t, err)
	_, _, err = parseMovetext("1. e4 ) e5")
	assert.Error(t, err)
	_, _, err = parseMovetext("1. e4 (1. d4")
	assert.Error(t, err)
}

func TestCleanSAN(t *testing.T) {
	assert.Equal(t, "e4", cleanSAN("1.e4"))
	assert.Equal(t, "Nf6", cleanSAN("Nf6?!"))
	assert.Equal(t, "", cleanSAN("12..."))
	assert.Equal(t, "O-O+", cleanSAN("O-O+"))
}
