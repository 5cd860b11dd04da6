// Package source defines named source texts and a queue of sources consumed by lexer.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"github.com/cerfical/parsec/internal/queue"
)

// Source is a named text with line index.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i, b := range content {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos.
// pos is clamped to content bounds.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset for line and column, columns are counted in bytes.
// Returns 0 for non-positive arguments and content length for positions beyond the end.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// Pos is a position in a source, implements parsec.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

type queueItem struct {
	source *Source
	pos    int
}

// Queue holds the current source with current position and sources to be processed next.
type Queue struct {
	current queueItem
	pending *queue.Queue[queueItem]
}

func NewQueue() *Queue {
	return &Queue{pending: queue.New[queueItem]()}
}

// Source returns current source or nil if there are no sources left.
func (q *Queue) Source() *Source {
	return q.current.source
}

func (q *Queue) Pos() int {
	return q.current.pos
}

func (q *Queue) SourcePos() Pos {
	if q.current.source == nil {
		return Pos{}
	}
	return NewPos(q.current.source, q.current.pos)
}

// Append adds source to the end of the queue.
func (q *Queue) Append(s *Source) *Queue {
	if q.current.source == nil {
		q.current = queueItem{s, 0}
	} else {
		q.pending.Append(queueItem{s, 0})
	}
	return q
}

// Prepend makes s current, the previous current source is resumed at its position after s.
func (q *Queue) Prepend(s *Source) *Queue {
	if q.current.source != nil {
		q.pending.Prepend(q.current)
	}
	q.current = queueItem{s, 0}
	return q
}

// IsEmpty reports whether all sources are consumed.
func (q *Queue) IsEmpty() bool {
	return q.current.source == nil
}

// AtEnd reports whether current position is at the end of current source.
func (q *Queue) AtEnd() bool {
	return q.current.source == nil || q.current.pos >= q.current.source.Len()
}

// NextSource discards current source.
func (q *Queue) NextSource() {
	q.current, _ = q.pending.First()
}

// ContentPos returns content of current source and current position.
func (q *Queue) ContentPos() ([]byte, int) {
	if q.current.source == nil {
		return []byte{}, 0
	}
	return q.current.source.content, q.current.pos
}

// Skip advances current position within current source.
func (q *Queue) Skip(size int) {
	if size > 0 {
		q.Seek(q.current.pos + size)
	}
}

// Seek sets current position, the position is clamped to current source bounds.
func (q *Queue) Seek(pos int) {
	if q.current.source == nil {
		return
	}

	switch {
	case pos <= 0:
		q.current.pos = 0
	case pos > q.current.source.Len():
		q.current.pos = q.current.source.Len()
	default:
		q.current.pos = pos
	}
}
