// Package history implements the shell's rolling command history.
package history

import (
	"fmt"
	"io"
)

// DefaultSize is the number of entries retained when no size is configured.
const DefaultSize = 10

// Entry is a single recorded command line.
type Entry struct {
	Index int
	Line  string
}

// Store is a fixed-capacity history of raw command lines.
//
// Every recorded line gets the next index, starting at 0. Once more than
// Size lines have been recorded the oldest ones fall out of the window and
// can no longer be looked up, but indices are never reused.
//
// Store is not safe for concurrent mutation; it's owned by the shell's
// dispatch loop.
type Store struct {
	size  int
	next  int
	lines []string
}

// New creates a history that retains the last size lines.
func New(size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{size: size}
}

// Record appends line to the history.
func (s *Store) Record(line string) {
	s.lines = append(s.lines, line)
	if len(s.lines) > s.size {
		s.lines = s.lines[len(s.lines)-s.size:]
	}
	s.next++
}

// Count returns the number of lines ever recorded.
func (s *Store) Count() int {
	return s.next
}

// Lookup fetches the line at index, ok is false if it was never recorded or
// has fallen out of the window.
func (s *Store) Lookup(index int) (line string, ok bool) {
	first := s.next - len(s.lines)
	if index < first || index >= s.next {
		return "", false
	}
	return s.lines[index-first], true
}

// Last fetches the most recently recorded line.
func (s *Store) Last() (string, bool) {
	return s.Lookup(s.next - 1)
}

// Entries lists the retained lines, oldest first.
func (s *Store) Entries() []Entry {
	first := s.next - len(s.lines)
	out := make([]Entry, 0, len(s.lines))
	for i, line := range s.lines {
		out = append(out, Entry{Index: first + i, Line: line})
	}
	return out
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return &Store{
		size:  s.size,
		next:  s.next,
		lines: append([]string(nil), s.lines...),
	}
}

// Clear drops every retained line. Indices keep counting from where they
// left off.
func (s *Store) Clear() {
	s.lines = nil
}

// WriteTo prints the retained lines with their indices.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range s.Entries() {
		n, err := fmt.Fprintf(w, "% 5d  %s\n", e.Index, e.Line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
