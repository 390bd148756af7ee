package session

import "math"

// QuestionResult is the per-question line of a results snapshot.
type QuestionResult struct {
	Index          int
	Status         Status
	Answer         Answer
	CorrectIndex   int
	LatencySeconds int // 0 when the question was never answered
	Marked         bool
}

// Results is a pure snapshot of an attempt's outcome.
type Results struct {
	Total     int
	Score     int
	Correct   int
	Wrong     int
	Skipped   int // explicit skips plus never-answered slots
	Accuracy  int // percent over attempted questions; 0 when none attempted
	Elapsed   int // seconds
	AvgSecs   int
	HintsUsed int
	Rating    string

	Questions []QuestionResult
}

// Results recomputes the outcome from the full answer sequence. It never
// reads the optimistic running counter, so the figures are a pure function
// of (questions, answers) no matter how the session got there.
func (s *Session) Results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Results{
		Total:     len(s.answers),
		Elapsed:   s.elapsed,
		HintsUsed: s.hintsUsed,
		Questions: make([]QuestionResult, len(s.answers)),
	}
	for i, a := range s.answers {
		st := s.statusLocked(i)
		switch st {
		case StatusCorrect:
			r.Correct++
		case StatusWrong:
			r.Wrong++
		default:
			r.Skipped++
		}
		r.Questions[i] = QuestionResult{
			Index:          i,
			Status:         st,
			Answer:         a,
			CorrectIndex:   s.correct[i],
			LatencySeconds: int(math.Round(s.timings[i].latency.Seconds())),
			Marked:         s.marked[i],
		}
	}
	r.Score = r.Correct
	if r.Total > r.Skipped {
		r.Accuracy = int(math.Round(float64(r.Correct) / float64(r.Total-r.Skipped) * 100))
	}
	if r.Total > 0 {
		r.AvgSecs = int(math.Round(float64(r.Elapsed) / float64(r.Total)))
	}
	r.Rating = rating(r.Accuracy)
	return r
}

func rating(accuracy int) string {
	switch {
	case accuracy >= 80:
		return "Excellent!"
	case accuracy >= 60:
		return "Good Job!"
	case accuracy >= 40:
		return "Keep Practicing!"
	default:
		return "Need More Practice!"
	}
}
