// Package progress folds graded session results into a candidate's cumulative
// statistics. It is pure: no I/O, no failure modes; persisting the result is
// the caller's job.
package progress

import (
	"math"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// minutesPerQuestion is the fixed study-time estimate per answered question.
const minutesPerQuestion = 3.0

// Apply merges one finished session into prev and returns the new progress.
// roleID is empty for free practice, which only accrues hours and history;
// QuestionsResolved and AccuracyRate move on role-tied sessions alone.
//
// The accuracy merge reconstructs the implied correct-count from the stored
// rolling percentage instead of keeping a separate counter. Rounding at each
// merge drifts slightly over time; that is the stored data's established
// behavior and the rounding order here must not change.
func Apply(prev domain.CandidateProgress, results []domain.GradedResult, roleID string) domain.CandidateProgress {
	if len(results) == 0 {
		return prev
	}

	next := prev
	next.History = appendHistory(prev.History, results, roleID)
	next.HoursStudied = round2(prev.HoursStudied + float64(len(results))*minutesPerQuestion/60)

	if roleID == "" {
		return next
	}

	correct := 0
	for _, res := range results {
		if res.Correct {
			correct++
		}
	}

	next.QuestionsResolved = prev.QuestionsResolved + len(results)
	priorCorrect := math.Round(float64(prev.QuestionsResolved) * prev.AccuracyRate / 100)
	newCorrect := priorCorrect + float64(correct)
	if next.QuestionsResolved > 0 {
		next.AccuracyRate = round1(newCorrect / float64(next.QuestionsResolved) * 100)
	} else {
		next.AccuracyRate = 0
	}
	return next
}

func appendHistory(prev []domain.HistoryEntry, results []domain.GradedResult, roleID string) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(prev)+len(results))
	out = append(out, prev...)
	for _, res := range results {
		out = append(out, domain.HistoryEntry{GradedResult: res, RoleID: roleID})
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
