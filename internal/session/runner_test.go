package session

import (
	"testing"
	"time"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
}

func testQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Options: []string{"one", "two", "three"}, CorrectLetter: "B"},
		{ID: "q2", Options: []string{"yes", "no"}, CorrectLetter: "A"},
		{ID: "q3", Options: []string{"x", "y", "z", "w"}, CorrectLetter: "D"},
	}
}

func newTestRunner() *Runner {
	return NewWithClock("s1", "cand-1", "role-1", testQuestions(), fixedClock)
}

func TestSelectConfirmGrade(t *testing.T) {
	r := newTestRunner()

	if !r.SelectOption("B") {
		t.Fatalf("select should succeed")
	}
	if !r.Confirm() {
		t.Fatalf("confirm should succeed")
	}

	results := r.Finish()
	if len(results) != 1 {
		t.Fatalf("expected 1 graded result, got %d", len(results))
	}
	if !results[0].Correct || results[0].QuestionID != "q1" || results[0].Chosen != "B" {
		t.Fatalf("unexpected result %+v", results[0])
	}
}

func TestSelectionReplacedUntilConfirmed(t *testing.T) {
	r := newTestRunner()

	if !r.SelectOption("A") || !r.SelectOption("C") {
		t.Fatalf("reselect before confirm should succeed")
	}
	if !r.Confirm() {
		t.Fatalf("confirm should succeed")
	}
	if r.SelectOption("A") {
		t.Fatalf("select after confirm must be rejected")
	}
	if r.Confirm() {
		t.Fatalf("double confirm must be rejected")
	}

	results := r.Finish()
	if len(results) != 1 || results[0].Chosen != "C" {
		t.Fatalf("expected confirmed C, got %+v", results)
	}
}

func TestConfirmRequiresSelection(t *testing.T) {
	r := newTestRunner()
	if r.Confirm() {
		t.Fatalf("confirm without selection must be rejected")
	}
}

func TestSelectRejectsLetterOutsideOptions(t *testing.T) {
	r := newTestRunner()
	if !r.GoTo(1) {
		t.Fatalf("goto should succeed")
	}
	// q2 has two options; C does not exist.
	if r.SelectOption("C") {
		t.Fatalf("letter beyond option count must be rejected")
	}
	if r.SelectOption("F") {
		t.Fatalf("unknown letter must be rejected")
	}
}

func TestNavigationRestoresState(t *testing.T) {
	r := newTestRunner()

	r.SelectOption("B")
	r.Confirm()
	if !r.GoTo(2) {
		t.Fatalf("navigating away without confirming q3 first is allowed")
	}
	if letter, confirmed := r.Selection(); letter != "" || confirmed {
		t.Fatalf("never-visited question should be blank, got %q/%v", letter, confirmed)
	}
	if !r.GoTo(0) {
		t.Fatalf("goto back should succeed")
	}
	if letter, confirmed := r.Selection(); letter != "B" || !confirmed {
		t.Fatalf("expected restored confirmed B, got %q/%v", letter, confirmed)
	}
	if r.GoTo(3) {
		t.Fatalf("out-of-range index must be rejected")
	}
}

// Grading only depends on what was confirmed, not on the order the candidate
// navigated to get there.
func TestGradingIgnoresNavigationOrder(t *testing.T) {
	forward := newTestRunner()
	forward.SelectOption("B")
	forward.Confirm()
	forward.GoTo(1)
	forward.SelectOption("B")
	forward.Confirm()

	backward := newTestRunner()
	backward.GoTo(1)
	backward.SelectOption("B")
	backward.Confirm()
	backward.GoTo(0)
	backward.SelectOption("B")
	backward.Confirm()

	a, b := forward.Finish(), backward.Finish()
	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("result %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFinishSkipsUnconfirmed(t *testing.T) {
	r := newTestRunner()

	r.SelectOption("B")
	r.Confirm()
	r.GoTo(1)
	r.SelectOption("B") // selected but never confirmed

	results := r.Finish()
	if len(results) != 1 || results[0].QuestionID != "q1" {
		t.Fatalf("unconfirmed answers must not be graded, got %+v", results)
	}
}

func TestFinishIsTerminalAndIdempotent(t *testing.T) {
	r := newTestRunner()
	r.SelectOption("A")
	r.Confirm()

	first := r.Finish()
	second := r.Finish()
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("repeat finish must return the same results")
	}
	if r.SelectOption("B") || r.Confirm() || r.GoTo(1) {
		t.Fatalf("operations after finish must be rejected")
	}
	if !r.Finished() {
		t.Fatalf("runner should report finished")
	}
}

func TestEmptyPoolFinishesWithNothing(t *testing.T) {
	r := NewWithClock("s1", "cand-1", "", nil, fixedClock)

	if _, ok := r.Current(); ok {
		t.Fatalf("empty pool has no current question")
	}
	if r.SelectOption("A") || r.Confirm() {
		t.Fatalf("operations on an empty pool must be rejected")
	}
	if results := r.Finish(); len(results) != 0 {
		t.Fatalf("expected zero results, got %d", len(results))
	}
}
