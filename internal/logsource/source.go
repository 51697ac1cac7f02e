package logsource

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

const DefaultMaxLines = 200

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrInvalidCursor = errors.New("invalid cursor token")
)

// Source fetches pages of log lines for a run.
type Source interface {
	Lines(ctx context.Context, q Query) (Page, error)
}

// Query addresses a page. With neither cursor set the newest lines come
// back; ForwardCursor continues towards newer lines and ReverseCursor
// towards older ones. Cursors refer to positions in the unfiltered log.
type Query struct {
	RunID         string
	ForwardCursor string
	ReverseCursor string
	MaxLines      int
	Filter        string
}

// Line is a single log line. Number is its 1-based position in the
// unfiltered log.
type Line struct {
	Number int
	Text   string
}

type Page struct {
	Lines               []Line
	ForwardCursor       string
	ReverseCursor       string
	CanContinueForward  bool
	CanContinueBackward bool
	InfoMessage         string
}

// Matches reports whether line passes filter. An empty filter matches
// everything.
func Matches(line, filter string) bool {
	return filter == "" || strings.Contains(line, filter)
}

func encodeCursor(offset int) string {
	return strconv.Itoa(offset)
}

func decodeCursor(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, ErrInvalidCursor
	}
	return n, nil
}

// paginate applies q to an in-memory log. Cursor tokens are offsets into
// lines: the forward cursor is the first offset not yet returned, the
// reverse cursor is the offset of the oldest line returned.
func paginate(lines []string, q Query) (Page, error) {
	limit := q.MaxLines
	if limit <= 0 {
		limit = DefaultMaxLines
	}

	switch {
	case q.ForwardCursor != "":
		start, err := decodeCursor(q.ForwardCursor)
		if err != nil {
			return Page{}, err
		}
		return pageForward(lines, start, limit, q.Filter), nil
	case q.ReverseCursor != "":
		end, err := decodeCursor(q.ReverseCursor)
		if err != nil {
			return Page{}, err
		}
		return pageBackward(lines, end, limit, q.Filter), nil
	default:
		return pageBackward(lines, len(lines), limit, q.Filter), nil
	}
}

func pageForward(lines []string, start, limit int, filter string) Page {
	if start > len(lines) {
		start = len(lines)
	}
	var out []Line
	next := start
	for ; next < len(lines) && len(out) < limit; next++ {
		if Matches(lines[next], filter) {
			out = append(out, Line{Number: next + 1, Text: lines[next]})
		}
	}

	p := Page{
		Lines:               out,
		ForwardCursor:       encodeCursor(next),
		ReverseCursor:       encodeCursor(start),
		CanContinueForward:  anyMatch(lines[next:], filter),
		CanContinueBackward: anyMatch(lines[:start], filter),
	}
	if len(out) > 0 {
		p.ReverseCursor = encodeCursor(out[0].Number - 1)
	}
	return p
}

func pageBackward(lines []string, end, limit int, filter string) Page {
	if end > len(lines) {
		end = len(lines)
	}
	var rev []Line
	first := end
	for i := end - 1; i >= 0 && len(rev) < limit; i-- {
		if Matches(lines[i], filter) {
			rev = append(rev, Line{Number: i + 1, Text: lines[i]})
			first = i
		}
	}
	out := make([]Line, len(rev))
	for i := range rev {
		out[len(rev)-1-i] = rev[i]
	}

	return Page{
		Lines:               out,
		ForwardCursor:       encodeCursor(end),
		ReverseCursor:       encodeCursor(first),
		CanContinueForward:  anyMatch(lines[end:], filter),
		CanContinueBackward: anyMatch(lines[:first], filter),
	}
}

func anyMatch(lines []string, filter string) bool {
	for _, l := range lines {
		if Matches(l, filter) {
			return true
		}
	}
	return false
}
