package domain

import "time"

// Question is a catalog entry for a single multiple-choice question.
// Questions are immutable once created and referenced by ID only.
type Question struct {
	ID             string   `json:"id"`
	SubjectID      string   `json:"subjectId"`
	Board          string   `json:"board"`
	Year           int      `json:"year"`
	ExamName       string   `json:"examName"`
	Prompt         string   `json:"prompt"`
	Passage        string   `json:"passage,omitempty"`
	ImageRef       string   `json:"imageRef,omitempty"`
	Options        []string `json:"options"` // 2-5 answer texts, positions map to letters A..E
	CorrectLetter  string   `json:"correctLetter"`
	EducationLevel string   `json:"educationLevel"`
}

// SessionFilter narrows the question pool for free-practice sessions.
// A zero field means no constraint on that axis.
type SessionFilter struct {
	Board          string `json:"board,omitempty"`
	Year           int    `json:"year,omitempty"`
	EducationLevel string `json:"educationLevel,omitempty"`
}

// GradedResult is the durable outcome of one confirmed answer.
type GradedResult struct {
	QuestionID string    `json:"questionId"`
	Chosen     string    `json:"chosen"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// HistoryEntry is a GradedResult tagged with the role it was answered under.
// An empty RoleID marks a free-practice answer.
type HistoryEntry struct {
	GradedResult
	RoleID string `json:"roleId,omitempty"`
}

// CandidateProgress holds a candidate's cumulative practice statistics.
// QuestionsResolved and AccuracyRate only move on role-tied sessions;
// free practice contributes hours and history alone.
type CandidateProgress struct {
	HoursStudied      float64        `json:"hoursStudied"`
	QuestionsResolved int            `json:"questionsResolved"`
	AccuracyRate      float64        `json:"accuracyRate"` // 0-100, one decimal
	History           []HistoryEntry `json:"history,omitempty"`
}

// PlanTier distinguishes free and paid accounts.
type PlanTier string

const (
	PlanFree PlanTier = "free"
	PlanPaid PlanTier = "paid"
)

// CandidateProfile is a candidate's stored profile. TrackedRoles is kept as the
// raw stored value: legacy rows carry it as a JSON-encoded string, newer ones as
// a native list, and some rows omit it entirely. Use ranking.ParseTrackedRoles
// to normalize it.
type CandidateProfile struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"displayName"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	AvatarRef    string   `json:"avatarRef,omitempty"`
	Plan         PlanTier `json:"plan,omitempty"`
	TrackedRoles any      `json:"trackedRoles,omitempty"`
	Age          int      `json:"age,omitempty"`
	Disability   bool     `json:"disability,omitempty"`
}

// CandidateRecord pairs a stored profile with its stored progress snapshot.
type CandidateRecord struct {
	Profile  CandidateProfile  `json:"profile"`
	Progress CandidateProgress `json:"progress"`
}

// Role is a hireable position within a public-exam process, with its seat
// quotas. CategorySeats is an extra reserve bucket that counts toward the open
// pool when ranking candidates.
type Role struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	EducationLevel  string `json:"educationLevel"`
	OpenSeats       int    `json:"openSeats"`       // AC
	CategorySeats   int    `json:"categorySeats"`   // folded into open for ranking
	DisabilitySeats int    `json:"disabilitySeats"` // PCD
	ReserveSeats    int    `json:"reserveSeats"`    // CR
}

// CompetitiveOpenSeats is the seat count the open track ranks against.
func (r Role) CompetitiveOpenSeats() int {
	return r.OpenSeats + r.CategorySeats
}

// LeaderboardRow is a derived (candidate, role) row. A candidate tracking k
// roles appears on k boards with the same global stats.
type LeaderboardRow struct {
	CandidateID       string  `json:"candidateId"`
	RoleID            string  `json:"roleId"`
	DisplayName       string  `json:"displayName"`
	City              string  `json:"city,omitempty"`
	State             string  `json:"state,omitempty"`
	AvatarRef         string  `json:"avatarRef,omitempty"`
	Age               int     `json:"age,omitempty"`
	Disability        bool    `json:"disability,omitempty"`
	AccuracyRate      float64 `json:"accuracyRate"`
	QuestionsResolved int     `json:"questionsResolved"`
}

// PlacementStatus is the severity bucket shown to the candidate.
type PlacementStatus string

const (
	PlacementSuccess PlacementStatus = "success" // within the seat quota
	PlacementWarning PlacementStatus = "warning" // reserve list
	PlacementInfo    PlacementStatus = "info"    // not yet placed
)

var optionLetters = []string{"A", "B", "C", "D", "E"}

// OptionLetter returns the letter for a 0-based option index, or "" if out of range.
func OptionLetter(i int) string {
	if i < 0 || i >= len(optionLetters) {
		return ""
	}
	return optionLetters[i]
}

// LetterIndex returns the 0-based option index for a letter, or -1 if invalid.
func LetterIndex(letter string) int {
	for i, l := range optionLetters {
		if l == letter {
			return i
		}
	}
	return -1
}
