package suggest

// List is the ordered result of one Compute call together with a cyclic
// selection cursor. All methods are safe to call on a nil *List, which stands
// for "no active suggestions".
type List struct {
	items    []Suggestion
	position int
}

// NewList wraps already computed suggestions, mostly useful in tests.
func NewList(items ...Suggestion) *List {
	return &List{items: items}
}

// Len returns the number of suggestions.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Suggestions returns a copy of the suggestions in order.
func (l *List) Suggestions() []Suggestion {
	if l == nil {
		return nil
	}
	return append([]Suggestion(nil), l.items...)
}

// Position returns the index of the selected suggestion.
func (l *List) Position() int {
	if l == nil {
		return 0
	}
	return l.position
}

// First resets the selection to the first suggestion and returns it.
func (l *List) First() (Suggestion, bool) {
	if l.Len() == 0 {
		return Suggestion{}, false
	}
	l.position = 0
	return l.items[0], true
}

// Current returns the selected suggestion without moving the cursor.
func (l *List) Current() (Suggestion, bool) {
	if l.Len() == 0 || l.position < 0 || l.position >= len(l.items) {
		return Suggestion{}, false
	}
	return l.items[l.position], true
}

// Next advances the selection, wrapping to the first suggestion past the end.
func (l *List) Next() (Suggestion, bool) {
	if l.Len() == 0 {
		return Suggestion{}, false
	}
	l.position = (l.position + 1) % len(l.items)
	return l.items[l.position], true
}

// Previous moves the selection back, wrapping to the last suggestion below
// the first.
func (l *List) Previous() (Suggestion, bool) {
	if l.Len() == 0 {
		return Suggestion{}, false
	}
	l.position--
	if l.position < 0 {
		l.position = len(l.items) - 1
	}
	return l.items[l.position], true
}
