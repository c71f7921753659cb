package tui

import (
	"context"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex65536/fenview/internal/posbrowser"
	"github.com/alex65536/fenview/internal/util/slogx"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	e4FEN    = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
)

const testData = `{"FEN":"` + startFEN + `","score":"+0.2"}
{"FEN":"` + e4FEN + `","score":"-0.3"}
{"FEN":"8/8/4k3/8/8/4K3/4P3/8 w - - 0 60","score":"+M5"}
`

func newModel(t *testing.T, data string) Model {
	t.Helper()
	fsys := fstest.MapFS{"fen.txt": {Data: []byte(data)}}
	m, err := New(context.Background(), slogx.DiscardLogger(), posbrowser.NewFSSource(fsys, "fen.txt"), Options{})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	res, cmd := m.Update(msg)
	rm, ok := res.(Model)
	require.True(t, ok)
	return rm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, data string) Model {
	t.Helper()
	m := newModel(t, data)
	msg := m.load()
	m, _ = update(t, m, msg)
	return m
}

func TestLoading(t *testing.T) {
	m := newModel(t, testData)
	assert.Contains(t, m.View(), "Loading positions")
	_, ready := m.Current()
	assert.False(t, ready)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	_, ready = m.Current()
	assert.False(t, ready)

	m, _ = update(t, m, m.load())
	v, ready := m.Current()
	require.True(t, ready)
	assert.Equal(t, 1, v.Counter)
	assert.Equal(t, 3, v.Total)
}

func TestNavigation(t *testing.T) {
	m := loaded(t, testData)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	v, _ := m.Current()
	assert.Equal(t, 2, v.Counter)
	assert.Equal(t, posbrowser.OrientationBlack, v.Orientation)

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("l"))
	v, _ = m.Current()
	assert.Equal(t, 1, v.Counter)

	m, _ = update(t, m, runes("p"))
	v, _ = m.Current()
	assert.Equal(t, 3, v.Counter)
	assert.Equal(t, "+M5", v.EngineEval)

	m, _ = update(t, m, runes("g"))
	v, _ = m.Current()
	assert.Equal(t, 1, v.Counter)

	m, _ = update(t, m, runes("G"))
	v, _ = m.Current()
	assert.Equal(t, 3, v.Counter)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runes("h"))
	v, _ = m.Current()
	assert.Equal(t, 1, v.Counter)
}

func TestUpdateKeepsOldModel(t *testing.T) {
	m := loaded(t, testData)
	next, _ := update(t, m, runes("n"))
	v, _ := m.Current()
	assert.Equal(t, 1, v.Counter)
	v, _ = next.Current()
	assert.Equal(t, 2, v.Counter)
}

func TestView(t *testing.T) {
	m := loaded(t, testData)
	out := m.View()
	assert.Contains(t, out, "FEN 1")
	assert.Contains(t, out, "Engine Eval: +0.2")
	assert.Contains(t, out, "♜")
	assert.Contains(t, out, "♔")

	m, _ = update(t, m, runes("n"))
	out = m.View()
	assert.Contains(t, out, "FEN 2")
	assert.Contains(t, out, "Engine Eval: -0.3")
}

func TestEmpty(t *testing.T) {
	m := loaded(t, "nothing here\n")
	out := m.View()
	assert.Contains(t, out, "FEN 1")
	assert.Contains(t, out, "of 0")
	assert.Contains(t, out, "no positions")

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("G"))
	v, _ := m.Current()
	assert.Equal(t, 1, v.Counter)
	assert.True(t, v.Empty())
}

func TestQuit(t *testing.T) {
	m := loaded(t, testData)
	m, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestHelpToggle(t *testing.T) {
	m := loaded(t, testData)
	assert.NotContains(t, m.View(), "first")
	m, _ = update(t, m, runes("?"))
	assert.Contains(t, m.View(), "first")
}

func TestBadPalette(t *testing.T) {
	_, err := New(context.Background(), slogx.DiscardLogger(), posbrowser.NewSource("x", nil), Options{DarkSquare: "zzz"})
	assert.Error(t, err)
}
