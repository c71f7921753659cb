package pgnscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	tagRegex     = regexp.MustCompile(`^\[\s*([A-Za-z0-9_]+)\s+"((?:[^"\\]|\\.)*)"\s*\]$`)
	moveNumRegex = regexp.MustCompile(`^[0-9]+\.+`)
)

var results = map[string]struct{}{
	"1-0":     {},
	"0-1":     {},
	"1/2-1/2": {},
	"*":       {},
}

type Game struct {
	Tags   map[string]string
	Moves  []string
	Result string
}

func (g *Game) Tag(name string) string {
	return g.Tags[name]
}

// GameError is returned by Reader.Next when a game was read but could not be
// parsed. The reader stays positioned at the following game.
type GameError struct {
	Line int
	Game *Game
	Err  error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("game ending at line %d: %v", e.Line, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// Reader reads games one by one from a PGN file.
type Reader struct {
	br     *bufio.Reader
	lineNo int
	peeked *string
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

func (r *Reader) readLine() (string, error) {
	if r.peeked != nil {
		ln := *r.peeked
		r.peeked = nil
		return ln, nil
	}
	ln, err := r.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read: %w", err)
		}
		if ln == "" {
			return "", io.EOF
		}
	}
	r.lineNo++
	return strings.TrimRight(ln, "\r\n"), nil
}

func (r *Reader) unreadLine(ln string) {
	r.peeked = &ln
}

func unescapeTag(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		_ = b.WriteByte(s[i])
	}
	return b.String()
}

// Next returns the next game, or io.EOF if there are no more games. A game with
// malformed tags or movetext is consumed whole and reported as *GameError, so
// the caller may skip it and call Next again.
func (r *Reader) Next() (*Game, error) {
	game := &Game{Tags: make(map[string]string)}
	var (
		movetext strings.Builder
		tagErr   error
	)
	seen := false
	inMoves := false
	for {
		ln, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && !inCommentOrVariation(movetext.String()) {
			if inMoves {
				r.unreadLine(ln)
				break
			}
			m := tagRegex.FindStringSubmatch(trimmed)
			seen = true
			if m == nil {
				if tagErr == nil {
					tagErr = fmt.Errorf("line %d: bad tag pair", r.lineNo)
				}
				continue
			}
			game.Tags[m[1]] = unescapeTag(m[2])
			continue
		}
		inMoves = true
		seen = true
		_, _ = movetext.WriteString(ln)
		_ = movetext.WriteByte('\n')
	}
	if !seen {
		return nil, io.EOF
	}
	if tagErr != nil {
		return nil, &GameError{Line: r.lineNo, Game: game, Err: tagErr}
	}
	moves, result, err := parseMovetext(movetext.String())
	if err != nil {
		return nil, &GameError{Line: r.lineNo, Game: game, Err: err}
	}
	game.Moves = moves
	game.Result = result
	if game.Result == "" {
		game.Result = game.Tags["Result"]
	}
	return game, nil
}

func inCommentOrVariation(s string) bool {
	depth, comment := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case comment:
			if c == '}' {
				comment = false
			}
		case c == '{':
			comment = true
		case c == ';':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return comment || depth > 0
}

func cleanSAN(tok string) string {
	tok = moveNumRegex.ReplaceAllString(tok, "")
	return strings.TrimRight(tok, "!?")
}

func parseMovetext(s string) ([]string, string, error) {
	var (
		moves  []string
		result string
		depth  int
	)
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, "", fmt.Errorf("unterminated comment")
			}
			i += end + 1
			continue
		case c == ';':
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				i = len(s)
			} else {
				i += end + 1
			}
			continue
		case c == '(':
			depth++
			i++
			continue
		case c == ')':
			if depth == 0 {
				return nil, "", fmt.Errorf("unbalanced variation")
			}
			depth--
			i++
			continue
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		}
		j := i
		for j < len(s) && !strings.ContainsRune(" \t\r\n{}();", rune(s[j])) {
			j++
		}
		tok := s[i:j]
		i = j
		if depth > 0 || strings.HasPrefix(tok, "$") {
			continue
		}
		if _, ok := results[tok]; ok {
			result = tok
			continue
		}
		if san := cleanSAN(tok); san != "" {
			moves = append(moves, san)
		}
	}
	if depth != 0 {
		return nil, "", fmt.Errorf("unterminated variation")
	}
	return moves, result, nil
}
