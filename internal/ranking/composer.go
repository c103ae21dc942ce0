// Package ranking composes per-role leaderboards from stored candidate
// records and evaluates seat-quota placement.
package ranking

import (
	"sort"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// Compose builds the sorted leaderboard for one role. bulk is the stored
// candidate universe (possibly incomplete and possibly stale); self is the
// requesting candidate's live record, which replaces any stored copy of the
// same candidate so viewers never see their own cached numbers. Each candidate
// contributes one row per tracked role, all carrying the same global stats.
//
// Rows are ordered by accuracy descending. There is deliberately no secondary
// tie-break key; the sort is stable so equal-accuracy candidates keep their
// input-relative order across re-renders.
func Compose(bulk []domain.CandidateRecord, self domain.CandidateRecord, roleID string) []domain.LeaderboardRow {
	rows := make([]domain.LeaderboardRow, 0, len(bulk))
	for _, rec := range bulk {
		if rec.Profile.ID == self.Profile.ID {
			continue
		}
		for _, row := range Explode(rec) {
			if row.RoleID == roleID {
				rows = append(rows, row)
			}
		}
	}
	rows = append(rows, rowFor(self, roleID))

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AccuracyRate > rows[j].AccuracyRate
	})
	return rows
}

// Explode materializes every (candidate, role) row of one record, one per
// tracked role. Records with no parseable tracked roles yield nothing.
func Explode(rec domain.CandidateRecord) []domain.LeaderboardRow {
	tracked := ParseTrackedRoles(rec.Profile.TrackedRoles)
	rows := make([]domain.LeaderboardRow, 0, len(tracked))
	for _, roleID := range tracked {
		rows = append(rows, rowFor(rec, roleID))
	}
	return rows
}

func rowFor(rec domain.CandidateRecord, roleID string) domain.LeaderboardRow {
	return domain.LeaderboardRow{
		CandidateID:       rec.Profile.ID,
		RoleID:            roleID,
		DisplayName:       rec.Profile.DisplayName,
		City:              rec.Profile.City,
		State:             rec.Profile.State,
		AvatarRef:         rec.Profile.AvatarRef,
		Age:               rec.Profile.Age,
		Disability:        rec.Profile.Disability,
		AccuracyRate:      rec.Progress.AccuracyRate,
		QuestionsResolved: rec.Progress.QuestionsResolved,
	}
}
