package posbrowser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []Record {
	res := make([]Record, n)
	for i := range res {
		res[i] = Record{BoardState: fmt.Sprintf("8/8/8/8/8/8/8/8 w - - 0 %d", i+1), Score: fmt.Sprint(i)}
	}
	return res
}

func TestNavigationEmpty(t *testing.T) {
	b := New(nil)
	b.Next()
	assert.Equal(t, 0, b.Index())
	b.Prev()
	assert.Equal(t, 0, b.Index())
	assert.False(t, b.Seek(0))

	v := b.View()
	assert.True(t, v.Empty())
	assert.Equal(t, 1, v.Counter)
	assert.Equal(t, 0, v.Total)
	assert.Equal(t, "", v.BoardState)
	assert.Equal(t, "", v.ActiveColor)
	assert.Equal(t, "", v.EngineEval)
	assert.Equal(t, OrientationBlack, v.Orientation)
}

func TestNavigationSingle(t *testing.T) {
	b := New(makeRecords(1))
	b.Next()
	assert.Equal(t, 0, b.Index())
	b.Prev()
	assert.Equal(t, 0, b.Index())
}

func TestWraparound(t *testing.T) {
	b := New(makeRecords(5))
	b.Prev()
	assert.Equal(t, 4, b.Index())
	b.Next()
	assert.Equal(t, 0, b.Index())

	require.True(t, b.Seek(4))
	b.Next()
	assert.Equal(t, 0, b.Index())
	assert.False(t, b.Seek(5))
	assert.False(t, b.Seek(-1))
	assert.Equal(t, 0, b.Index())
}

func TestNextPrevInverse(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for i := range n {
			b := New(makeRecords(n))
			require.True(t, b.Seek(i))
			b.Next()
			b.Prev()
			assert.Equal(t, i, b.Index(), "n = %v", n)
			b.Prev()
			b.Next()
			assert.Equal(t, i, b.Index(), "n = %v", n)
		}
	}
}

func TestFullCycle(t *testing.T) {
	b := New(makeRecords(7))
	for range 7 {
		b.Next()
	}
	assert.Equal(t, 0, b.Index())
	for range 7 {
		b.Prev()
	}
	assert.Equal(t, 0, b.Index())
}

func TestClone(t *testing.T) {
	b := New(makeRecords(3))
	c := b.Clone()
	c.Next()
	assert.Equal(t, 0, b.Index())
	assert.Equal(t, 1, c.Index())
}

func TestScenario(t *testing.T) {
	data := `{"FEN":"` + startFEN + `","score":"+0.2"}` + "\n" +
		"not json\n" +
		`{"FEN":"` + blackFEN + `","score":"-1.1"}` + "\n"
	recs, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	b := New(recs)
	require.Equal(t, 2, b.Len())

	v := b.View()
	assert.Equal(t, OrientationWhite, v.Orientation)
	assert.Equal(t, "w", v.ActiveColor)
	assert.Equal(t, "+0.2", v.EngineEval)
	assert.Equal(t, 1, v.Counter)
	assert.Equal(t, 2, v.Total)
	assert.Equal(t, startFEN, v.BoardState)

	b.Next()
	v = b.View()
	assert.Equal(t, OrientationBlack, v.Orientation)
	assert.Equal(t, "-1.1", v.EngineEval)
	assert.Equal(t, 2, v.Counter)
}

func TestOrientationOddBoardState(t *testing.T) {
	b := New([]Record{{BoardState: "garbage"}, {BoardState: "  x   w  "}})
	assert.Equal(t, OrientationBlack, b.View().Orientation)
	b.Next()
	assert.Equal(t, OrientationWhite, b.View().Orientation)
	assert.Equal(t, "white", OrientationWhite.String())
	assert.Equal(t, "black", OrientationBlack.String())
	assert.True(t, OrientationBlack.FromBlack())
}
