// Package session implements the per-candidate practice session state machine.
package session

import (
	"time"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// answer tracks the candidate's state for one question. A confirmed answer can
// never be changed again, matching real exam semantics.
type answer struct {
	letter    string
	confirmed bool
}

// Runner is the state machine for one in-flight practice session. It is owned
// by exactly one controller and all operations are synchronous, so it carries
// no locking. Nothing here is persisted; abandoning a session simply discards
// the Runner.
type Runner struct {
	id          string
	candidateID string
	roleID      string // empty for free practice

	questions []domain.Question
	index     int
	answers   map[string]*answer

	now      func() time.Time
	finished bool
	results  []domain.GradedResult
}

// New builds a Runner over a fixed question sequence. The sequence is never
// re-shuffled after this point.
func New(id, candidateID, roleID string, questions []domain.Question) *Runner {
	return NewWithClock(id, candidateID, roleID, questions, time.Now)
}

// NewWithClock allows deterministic grading timestamps in tests.
func NewWithClock(id, candidateID, roleID string, questions []domain.Question, now func() time.Time) *Runner {
	return &Runner{
		id:          id,
		candidateID: candidateID,
		roleID:      roleID,
		questions:   questions,
		answers:     make(map[string]*answer, len(questions)),
		now:         now,
	}
}

func (r *Runner) ID() string          { return r.id }
func (r *Runner) CandidateID() string { return r.candidateID }
func (r *Runner) RoleID() string      { return r.roleID }
func (r *Runner) Len() int            { return len(r.questions) }
func (r *Runner) Index() int          { return r.index }
func (r *Runner) Finished() bool      { return r.finished }

// Current returns the question under the cursor, or false when the pool was
// empty and there is nothing to answer.
func (r *Runner) Current() (domain.Question, bool) {
	if len(r.questions) == 0 {
		return domain.Question{}, false
	}
	return r.questions[r.index], true
}

// Selection reports the stored state for the current question: the chosen
// letter (empty if none) and whether it has been confirmed.
func (r *Runner) Selection() (string, bool) {
	q, ok := r.Current()
	if !ok {
		return "", false
	}
	a, ok := r.answers[q.ID]
	if !ok {
		return "", false
	}
	return a.letter, a.confirmed
}

// SelectOption records a tentative choice for the current question. It is
// rejected once the question is confirmed, after the session finished, or when
// the letter does not name one of the question's options.
func (r *Runner) SelectOption(letter string) bool {
	if r.finished {
		return false
	}
	q, ok := r.Current()
	if !ok {
		return false
	}
	idx := domain.LetterIndex(letter)
	if idx < 0 || idx >= len(q.Options) {
		return false
	}
	a, ok := r.answers[q.ID]
	if ok && a.confirmed {
		return false
	}
	if !ok {
		a = &answer{}
		r.answers[q.ID] = a
	}
	a.letter = letter
	return true
}

// Confirm locks in the current selection. It requires a selection to exist and
// is irreversible for that question.
func (r *Runner) Confirm() bool {
	if r.finished {
		return false
	}
	q, ok := r.Current()
	if !ok {
		return false
	}
	a, ok := r.answers[q.ID]
	if !ok || a.letter == "" || a.confirmed {
		return false
	}
	a.confirmed = true
	return true
}

// GoTo moves the cursor to any question in the sequence. Navigating away from
// an unconfirmed question is allowed; whatever state exists at the target is
// restored, or a blank state if it was never visited.
func (r *Runner) GoTo(index int) bool {
	if r.finished {
		return false
	}
	if index < 0 || index >= len(r.questions) {
		return false
	}
	r.index = index
	return true
}

// Finish grades every confirmed answer against its question's correct letter
// and ends the session. Unanswered and unconfirmed questions contribute
// nothing; they are not counted as wrong. Finish is the terminal transition:
// repeat calls return the already-computed results and every other operation
// becomes a rejected no-op.
func (r *Runner) Finish() []domain.GradedResult {
	if r.finished {
		return r.results
	}
	r.finished = true

	now := r.now()
	results := make([]domain.GradedResult, 0, len(r.answers))
	for _, q := range r.questions {
		a, ok := r.answers[q.ID]
		if !ok || !a.confirmed {
			continue
		}
		results = append(results, domain.GradedResult{
			QuestionID: q.ID,
			Chosen:     a.letter,
			Correct:    a.letter == q.CorrectLetter,
			AnsweredAt: now,
		})
	}
	r.results = results
	return r.results
}
