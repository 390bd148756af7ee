// Package session holds the in-memory state machine for one quiz attempt:
// answer slots, skip and review marks, per-question timing and the elapsed
// ticker. It is deliberately free of any rendering concern; callers observe
// state through the view methods and redraw on their own.
package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

type State int

const (
	StateLoading State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "loading"
	}
}

// Answer is one slot of the answer sequence: a selected option index, or one
// of the two sentinels below.
type Answer int

const (
	Unanswered Answer = -2
	Skipped    Answer = -1
)

// Status classifies a question for navigators, review and reports.
type Status int

const (
	StatusUnanswered Status = iota
	StatusSkipped
	StatusCorrect
	StatusWrong
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	default:
		return "unanswered"
	}
}

var (
	ErrNotActive       = errors.New("session is not active")
	ErrOutOfRange      = errors.New("question index out of range")
	ErrBadOption       = errors.New("option index out of range")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotCompleted    = errors.New("session not completed")
)

// timing is one question's attributed-time record. Time accumulates only
// while the question is the displayed one, so spans never overlap across
// questions and jumping away and back cannot double-count.
type timing struct {
	accum    time.Duration
	openedAt time.Time
	open     bool
	started  bool
	latency  time.Duration
	answered bool
}

func (t *timing) openAt(now time.Time) {
	if !t.open {
		t.openedAt = now
		t.open = true
		t.started = true
	}
}

func (t *timing) closeAt(now time.Time) {
	if t.open {
		if d := now.Sub(t.openedAt); d > 0 {
			t.accum += d
		}
		t.open = false
	}
}

func (t *timing) spentAt(now time.Time) time.Duration {
	if t.open {
		if d := now.Sub(t.openedAt); d > 0 {
			return t.accum + d
		}
	}
	return t.accum
}

// Session is the exclusive owner of one attempt's mutable state. A fresh
// Load discards the previous attempt entirely.
type Session struct {
	mu sync.Mutex

	id      string
	state   State
	doc     quiz.Document
	correct []int // resolved once at load

	current      int
	answers      []Answer
	marked       map[int]bool
	timings      []timing
	elapsed      int // seconds, driven by the ticker
	runningScore int // optimistic display counter, never authoritative
	hintsUsed    int
	paused       bool

	// gen ties each ticker goroutine to the load that started it; a stale
	// ticker from a discarded attempt can never touch the new one.
	gen      uint64
	stopTick chan struct{}

	now          func() time.Time
	tickInterval time.Duration // <= 0 disables the goroutine (tests drive tick directly)

	// OnTick, when set before Load, is called with the elapsed seconds after
	// every tick, outside the session lock.
	OnTick func(seconds int)
}

func New() *Session {
	return &Session{state: StateLoading, now: time.Now, tickInterval: time.Second}
}

// Load initializes the session for a document and moves it to Active. The
// correct answers are resolved to canonical indices once, here; an
// unresolvable question fails the load.
func (s *Session) Load(doc quiz.Document) error {
	if len(doc.Questions) == 0 {
		return quiz.ErrNoQuestions
	}
	correct := make([]int, len(doc.Questions))
	for i, q := range doc.Questions {
		idx, err := q.CorrectIndex()
		if err != nil {
			return err
		}
		correct[i] = idx
	}

	s.mu.Lock()
	s.stopTickerLocked()

	n := len(doc.Questions)
	s.id = uuid.NewString()
	s.doc = doc
	s.correct = correct
	s.current = 0
	s.answers = make([]Answer, n)
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.marked = make(map[int]bool)
	s.timings = make([]timing, n)
	s.timings[0].openAt(s.now())
	s.elapsed = 0
	s.runningScore = 0
	s.hintsUsed = 0
	s.paused = false
	s.state = StateActive

	s.startTickerLocked()
	s.mu.Unlock()
	return nil
}

func (s *Session) startTickerLocked() {
	s.gen++
	if s.tickInterval <= 0 {
		return
	}
	gen := s.gen
	stop := make(chan struct{})
	s.stopTick = stop
	go func() {
		t := time.NewTicker(s.tickInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.tick(gen)
			case <-stop:
				return
			}
		}
	}()
}

func (s *Session) stopTickerLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state != StateActive || s.paused {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	cb, v := s.OnTick, s.elapsed
	s.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// PauseTimer toggles the elapsed ticker and reports whether it now runs.
func (s *Session) PauseTimer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return !s.paused
}

// SelectOption records an answer for the question at index and reports
// whether it was correct. An already-answered question can only be
// re-answered while it is the displayed one; the final score is recomputed
// from the full slot sequence, so re-selection can never double-count.
func (s *Session) SelectOption(index, option int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return false, ErrNotActive
	}
	if index < 0 || index >= len(s.answers) {
		return false, ErrOutOfRange
	}
	if option < 0 || option >= len(s.doc.Questions[index].Options) {
		return false, ErrBadOption
	}
	if s.answers[index] >= 0 && index != s.current {
		return false, ErrAlreadyAnswered
	}

	now := s.now()
	t := &s.timings[index]
	t.openAt(now)
	t.latency = t.spentAt(now)
	t.answered = true

	s.answers[index] = Answer(option)
	ok := option == s.correct[index]
	if ok {
		s.runningScore++
	}
	return ok, nil
}

// Skip marks the question's slot with the skip sentinel and, when it is the
// displayed question, advances past it.
func (s *Session) Skip(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	if index < 0 || index >= len(s.answers) {
		return ErrOutOfRange
	}
	s.answers[index] = Skipped
	if index == s.current {
		s.advanceLocked()
	}
	return nil
}

// Advance moves to the next question, completing the session when the last
// one is passed.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	s.advanceLocked()
	return nil
}

func (s *Session) advanceLocked() {
	now := s.now()
	s.timings[s.current].closeAt(now)
	s.current++
	if s.current >= len(s.answers) {
		s.current = len(s.answers) - 1
		s.completeLocked(now)
		return
	}
	s.timings[s.current].openAt(now)
}

// Jump moves the displayed position to target, closing the current timing
// record and opening the target's. Answered questions are legal targets;
// their slots just become read-only for selection elsewhere.
func (s *Session) Jump(target int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}
	if target < 0 || target >= len(s.answers) {
		return ErrOutOfRange
	}
	now := s.now()
	if target == s.current {
		return nil
	}
	s.timings[s.current].closeAt(now)
	s.current = target
	s.timings[target].openAt(now)
	return nil
}

// ToggleMark flips the review mark on a question and reports the new state.
func (s *Session) ToggleMark(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return false, ErrNotActive
	}
	if index < 0 || index >= len(s.answers) {
		return false, ErrOutOfRange
	}
	if s.marked[index] {
		delete(s.marked, index)
		return false, nil
	}
	s.marked[index] = true
	return true, nil
}

// MarkHintUsed bumps the hint counter for the attempt.
func (s *Session) MarkHintUsed() {
	s.mu.Lock()
	s.hintsUsed++
	s.mu.Unlock()
}

// Complete ends the attempt: the ticker stops, open timing closes, and the
// state freezes at Completed. Safe to call more than once.
func (s *Session) Complete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateCompleted:
		return nil
	case StateLoading:
		return ErrNotActive
	}
	s.completeLocked(s.now())
	return nil
}

func (s *Session) completeLocked(now time.Time) {
	s.timings[s.current].closeAt(now)
	s.state = StateCompleted
	s.stopTickerLocked()
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// RunningScore is the optimistic display counter. Results() is authoritative.
func (s *Session) RunningScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningScore
}

func (s *Session) Document() quiz.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Question returns the question at index.
func (s *Session) Question(index int) (quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Questions) {
		return quiz.Question{}, ErrOutOfRange
	}
	return s.doc.Questions[index], nil
}

// CorrectOption returns the resolved correct index for a question.
func (s *Session) CorrectOption(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.correct) {
		return 0, ErrOutOfRange
	}
	return s.correct[index], nil
}

// AnswerAt returns the slot value for a question.
func (s *Session) AnswerAt(index int) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.answers) {
		return Unanswered, ErrOutOfRange
	}
	return s.answers[index], nil
}

func (s *Session) Marked(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked[index]
}

// TimeSpent returns the time attributed to one question so far.
func (s *Session) TimeSpent(index int) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.timings) {
		return 0, ErrOutOfRange
	}
	return s.timings[index].spentAt(s.now()), nil
}

func (s *Session) statusLocked(i int) Status {
	switch a := s.answers[i]; {
	case a == Skipped:
		return StatusSkipped
	case a == Unanswered:
		return StatusUnanswered
	case int(a) == s.correct[i]:
		return StatusCorrect
	default:
		return StatusWrong
	}
}

// StatusOf classifies one question.
func (s *Session) StatusOf(index int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.answers) {
		return StatusUnanswered, ErrOutOfRange
	}
	return s.statusLocked(index), nil
}

// Navigator returns the per-question status row shown beside the quiz.
func (s *Session) Navigator() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Status, len(s.answers))
	for i := range s.answers {
		out[i] = s.statusLocked(i)
	}
	return out
}

// Progress returns how many slots have been acted on (answered or skipped)
// and the rounded percentage of the total.
func (s *Session) Progress() (acted, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.answers {
		if a != Unanswered {
			acted++
		}
	}
	if n := len(s.answers); n > 0 {
		percent = int(math.Round(float64(acted) / float64(n) * 100))
	}
	return acted, percent
}
