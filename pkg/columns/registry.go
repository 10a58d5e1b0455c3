package columns

import (
	"github.com/go-logr/logr"
)

// hidden marks a column with no display position.
const hidden = -1

// Registry tracks the display position of every column. Visible columns hold
// the dense positions 0..V-1; everything else is hidden.
//
// A Registry is not safe for concurrent use; see SyncRegistry.
type Registry struct {
	order      [numColumns]int
	configured bool
	log        logr.Logger
}

// Option customizes a Registry.
type Option func(*Registry)

// WithLogger routes registry debug logs (V(1)) to lgr.
func WithLogger(lgr logr.Logger) Option {
	return func(r *Registry) {
		r.log = lgr
	}
}

// New returns an unconfigured registry. Every call except Configure fails
// with ErrNotConfigured until Configure succeeds.
func New(opts ...Option) *Registry {
	r := &Registry{log: logr.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configure replaces the whole layout: each listed column takes its index as
// its position and every other column is hidden. A repeated or unknown column
// rejects the call and leaves the previous layout untouched.
func (r *Registry) Configure(cols ...Column) error {
	var next [numColumns]int
	for i := range next {
		next[i] = hidden
	}
	for pos, c := range cols {
		if !c.Valid() {
			return &UnknownColumnError{Column: c}
		}
		if next[c] != hidden {
			return &DuplicateColumnError{Column: c}
		}
		next[c] = pos
	}

	r.order = next
	r.configured = true
	r.log.V(1).Info("configured column order", "columns", keys(cols))
	return nil
}

// Configured reports whether Configure has succeeded at least once.
func (r *Registry) Configured() bool {
	return r.configured
}

// IsVisible reports whether c currently has a display position.
func (r *Registry) IsVisible(c Column) (bool, error) {
	if err := r.check(c); err != nil {
		return false, err
	}
	return r.order[c] != hidden, nil
}

// Position returns the display position of c. ok is false when c is hidden.
func (r *Registry) Position(c Column) (pos int, ok bool, err error) {
	if err := r.check(c); err != nil {
		return 0, false, err
	}
	if r.order[c] == hidden {
		return 0, false, nil
	}
	return r.order[c], true, nil
}

// VisibleColumnsInOrder returns the visible columns sorted by position. The
// result is never nil on success.
func (r *Registry) VisibleColumnsInOrder() ([]Column, error) {
	if !r.configured {
		return nil, ErrNotConfigured
	}
	visible := 0
	for _, pos := range r.order {
		if pos != hidden {
			visible++
		}
	}
	// Positions are dense, so every slot is written exactly once.
	out := make([]Column, visible)
	for c, pos := range r.order {
		if pos != hidden {
			out[pos] = Column(c)
		}
	}
	return out, nil
}

// Hide removes c from the layout and closes the gap it leaves, keeping the
// relative order of the remaining columns. Hiding a hidden column is a no-op.
// There is no inverse; call Configure to bring a column back.
func (r *Registry) Hide(c Column) error {
	if err := r.check(c); err != nil {
		return err
	}
	removed := r.order[c]
	if removed == hidden {
		return nil
	}
	r.order[c] = hidden
	for i, pos := range r.order {
		if pos > removed {
			r.order[i] = pos - 1
		}
	}
	r.log.V(1).Info("hid column", "column", c.Key(), "position", removed)
	return nil
}

func (r *Registry) check(c Column) error {
	if !r.configured {
		return ErrNotConfigured
	}
	if !c.Valid() {
		return &UnknownColumnError{Column: c}
	}
	return nil
}

func keys(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key()
	}
	return out
}
