package session

// Filter selects which questions a review pass walks.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterWrong   Filter = "wrong"
	FilterSkipped Filter = "skipped"
)

// Review derives a filtered, navigable view over a session's questions. It
// holds no state of its own beyond the filter and cursor; the indices are
// recomputed on every filter change. The skipped filter matches explicit
// skips only; a never-reached question shows as unanswered but is not
// "skipped".
type Review struct {
	sess    *Session
	filter  Filter
	indices []int
	current int // absolute question index; -1 when the filter is empty
}

// NewReview starts a review over the session with the all filter active.
func NewReview(s *Session) *Review {
	r := &Review{sess: s}
	r.SetFilter(FilterAll)
	return r
}

// SetFilter rebuilds the filtered sequence and resets the cursor to its
// first element. An empty result leaves the review idle (no current
// question).
func (r *Review) SetFilter(f Filter) []int {
	r.filter = f
	r.indices = r.indices[:0]

	n := r.sess.Len()
	for i := 0; i < n; i++ {
		st, _ := r.sess.StatusOf(i)
		include := false
		switch f {
		case FilterWrong:
			include = st == StatusWrong
		case FilterSkipped:
			include = st == StatusSkipped
		default:
			include = true
		}
		if include {
			r.indices = append(r.indices, i)
		}
	}

	if len(r.indices) == 0 {
		r.current = -1
	} else {
		r.current = r.indices[0]
	}
	out := make([]int, len(r.indices))
	copy(out, r.indices)
	return out
}

func (r *Review) Filter() Filter { return r.filter }

// Current returns the absolute index under the cursor; ok is false when the
// active filter matched nothing.
func (r *Review) Current() (int, bool) {
	if r.current < 0 {
		return 0, false
	}
	return r.current, true
}

// Position returns the cursor's 1-based place within the filtered sequence
// and that sequence's length.
func (r *Review) Position() (pos, total int) {
	total = len(r.indices)
	for i, idx := range r.indices {
		if idx == r.current {
			return i + 1, total
		}
	}
	return 0, total
}

// Next moves forward within the filtered sequence; at the boundary it is a
// no-op and reports false.
func (r *Review) Next() bool { return r.step(1) }

// Prev moves backward within the filtered sequence; boundary is a no-op.
func (r *Review) Prev() bool { return r.step(-1) }

func (r *Review) step(delta int) bool {
	if r.current < 0 {
		return false
	}
	at := -1
	for i, idx := range r.indices {
		if idx == r.current {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}
	next := at + delta
	if next < 0 || next >= len(r.indices) {
		return false
	}
	r.current = r.indices[next]
	return true
}

// JumpTo moves the cursor to an absolute question index, independent of the
// active filter (the jump-to dropdown in the original surface).
func (r *Review) JumpTo(index int) error {
	if index < 0 || index >= r.sess.Len() {
		return ErrOutOfRange
	}
	r.current = index
	return nil
}
