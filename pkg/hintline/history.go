package hintline

import (
	"strings"

	"github.com/samber/lo"
)

// History keeps the lines committed during the editor's lifetime together with
// a recall position. The position ranges over [0, Len()]; Len() means nothing
// is selected.
type History struct {
	entries  []string
	position int
}

func NewHistory() *History {
	return &History{}
}

// Record appends line unless it is blank or already present ignoring case.
// The recall position moves past the end either way. It reports whether the
// line was added.
func (h *History) Record(line string) bool {
	defer func() {
		h.position = len(h.entries)
	}()

	if strings.TrimSpace(line) == "" {
		return false
	}
	if lo.ContainsBy(h.entries, func(entry string) bool { return strings.EqualFold(entry, line) }) {
		return false
	}

	h.entries = append(h.entries, line)
	return true
}

// Previous steps back one entry, stopping at the oldest.
func (h *History) Previous() string {
	if len(h.entries) == 0 {
		return ""
	}

	h.position--
	if h.position >= len(h.entries) {
		h.position = len(h.entries) - 1
	}
	if h.position < 0 {
		h.position = 0
	}
	return h.entries[h.position]
}

// Next steps forward one entry, stopping at the newest.
func (h *History) Next() string {
	if len(h.entries) == 0 {
		return ""
	}

	h.position++
	if h.position >= len(h.entries) {
		h.position = len(h.entries) - 1
	}
	return h.entries[h.position]
}

// Entries returns the recorded lines, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Position() int {
	return h.position
}
