package ranking

import (
	"fmt"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// Placement is a candidate's standing against a role's seat quotas.
type Placement struct {
	Rank    int                    `json:"rank"`
	Seats   int                    `json:"seats"` // seat count of the candidate's track
	Status  domain.PlacementStatus `json:"status"`
	Message string                 `json:"message"`
}

// Evaluate classifies a candidate's position on an already-composed, sorted
// leaderboard. Candidates with the disability flag are ranked only among
// disability-flagged rows and compete for the disability-reserved seats;
// everyone else ranks on the full board against the open seats (category
// seats included). The bool result is false when the candidate does not
// appear on their effective board, meaning there is nothing to report.
//
// Boundaries are inclusive: rank == seats is placed, rank == seats+reserve is
// still on the reserve list. An off-by-one here misstates a candidate's
// standing, so the comparisons below are deliberate.
func Evaluate(rows []domain.LeaderboardRow, role domain.Role, candidateID string, disability bool) (Placement, bool) {
	board := rows
	seats := role.CompetitiveOpenSeats()
	if disability {
		board = disabilityTrack(rows)
		seats = role.DisabilitySeats
	}

	rank := 0
	for i, row := range board {
		if row.CandidateID == candidateID {
			rank = i + 1
			break
		}
	}
	if rank == 0 {
		return Placement{}, false
	}

	p := Placement{Rank: rank, Seats: seats}
	switch {
	case rank <= seats:
		p.Status = domain.PlacementSuccess
		if disability {
			p.Message = fmt.Sprintf("Rank %d puts you inside the %s.", rank, count(seats, "reserved disability seat"))
		} else {
			p.Message = fmt.Sprintf("Rank %d puts you inside the %s.", rank, count(seats, "open seat"))
		}
	case rank <= seats+role.ReserveSeats:
		p.Status = domain.PlacementWarning
		if seats == 0 {
			p.Message = fmt.Sprintf("This role fills from the reserve list only; rank %d is within its %s.", rank, count(role.ReserveSeats, "reserve seat"))
		} else {
			p.Message = fmt.Sprintf("Rank %d lands on the reserve list (%d open + %d reserve).", rank, seats, role.ReserveSeats)
		}
	default:
		p.Status = domain.PlacementInfo
		if seats+role.ReserveSeats > 0 {
			p.Message = fmt.Sprintf("Climb %s to enter the reserve zone.", count(rank-(seats+role.ReserveSeats), "position"))
		} else {
			p.Message = "No seats are open for this role yet. Keep practicing."
		}
	}
	return p, true
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func disabilityTrack(rows []domain.LeaderboardRow) []domain.LeaderboardRow {
	track := make([]domain.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		if row.Disability {
			track = append(track, row)
		}
	}
	return track
}
