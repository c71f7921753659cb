package posbrowser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alex65536/fenview/internal/util/sliceutil"
)

// Record is a single position from the dataset. Records are never modified after loading.
type Record struct {
	BoardState string
	Score      string
}

const (
	fenKey   = "FEN"
	scoreKey = "score"
)

func decodeScore(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("unmarshal string: %w", err)
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// Numbers are shown exactly as they are written in the file, so 0 becomes "0" rather
		// than an empty score.
		return string(raw), nil
	default:
		return "", fmt.Errorf("score must be a string or a number")
	}
}

func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("record must be an object")
	}
	// Keys are case-sensitive.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	rawFEN := bytes.TrimSpace(raw[fenKey])
	if len(rawFEN) == 0 || rawFEN[0] != '"' {
		return fmt.Errorf("no FEN string in record")
	}
	var fen string
	if err := json.Unmarshal(rawFEN, &fen); err != nil {
		return fmt.Errorf("unmarshal FEN: %w", err)
	}
	score, err := decodeScore(raw[scoreKey])
	if err != nil {
		return fmt.Errorf("bad score: %w", err)
	}
	*r = Record{BoardState: fen, Score: score}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FEN   string `json:"FEN"`
		Score string `json:"score"`
	}{FEN: r.BoardState, Score: r.Score})
}

// ParseLine decodes one line of the dataset. It returns false if the line must be skipped.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Record{}, false
	}
	var r Record
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		return Record{}, false
	}
	return r, true
}

// Parse reads newline-delimited records. Lines that cannot be decoded are dropped, so the only
// errors returned are the ones from reading r.
func Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return sliceutil.FilterMap(strings.Split(string(data), "\n"), ParseLine), nil
}
