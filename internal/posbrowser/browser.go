package posbrowser

import "strings"

type Orientation int

const (
	OrientationWhite Orientation = iota
	OrientationBlack
)

func (o Orientation) String() string {
	if o == OrientationWhite {
		return "white"
	}
	return "black"
}

func (o Orientation) FromBlack() bool {
	return o == OrientationBlack
}

// Browser holds the loaded positions and the index of the current one.
type Browser struct {
	records []Record
	index   int
}

func New(records []Record) *Browser {
	return &Browser{records: records}
}

func (b *Browser) Len() int   { return len(b.records) }
func (b *Browser) Index() int { return b.index }

// Next moves to the following position, wrapping around after the last one.
// It does nothing if there are no positions.
func (b *Browser) Next() {
	n := len(b.records)
	if n == 0 {
		return
	}
	b.index = (b.index + 1) % n
}

// Prev moves to the preceding position, wrapping around before the first one.
// It does nothing if there are no positions.
func (b *Browser) Prev() {
	n := len(b.records)
	if n == 0 {
		return
	}
	b.index = (b.index - 1 + n) % n
}

func (b *Browser) Seek(index int) bool {
	if index < 0 || index >= len(b.records) {
		return false
	}
	b.index = index
	return true
}

// Clone shares the records with b, as they are never modified.
func (b *Browser) Clone() *Browser {
	res := *b
	return &res
}

func (b *Browser) Current() (Record, bool) {
	if len(b.records) == 0 {
		return Record{}, false
	}
	return b.records[b.index], true
}

type View struct {
	Counter     int
	Total       int
	BoardState  string
	ActiveColor string
	Orientation Orientation
	EngineEval  string
}

func (v View) Empty() bool { return v.Total == 0 }

func activeColor(boardState string) string {
	fields := strings.Fields(boardState)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// View computes what must be displayed for the current position.
//
// Note that the board is oriented by the side to move, not by a fixed viewing side.
func (b *Browser) View() View {
	rec, _ := b.Current()
	v := View{
		Counter:     b.index + 1,
		Total:       len(b.records),
		BoardState:  rec.BoardState,
		ActiveColor: activeColor(rec.BoardState),
		EngineEval:  rec.Score,
	}
	if v.ActiveColor == "w" {
		v.Orientation = OrientationWhite
	} else {
		v.Orientation = OrientationBlack
	}
	return v
}
