package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/pool"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/progress"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/ranking"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/session"
)

// CatalogReader serves already-fetched question data for one subject.
type CatalogReader interface {
	Questions(ctx context.Context, subjectID string) ([]domain.Question, error)
}

// ProgressStore persists cumulative candidate statistics. Load returns zero
// progress for candidates that never practiced. Save must be atomic per
// candidate; concurrent finishes from two tabs are serialized there, not here.
type ProgressStore interface {
	Load(ctx context.Context, candidateID string) (domain.CandidateProgress, error)
	Save(ctx context.Context, candidateID string, p domain.CandidateProgress) error
}

// ProfileStore reads stored candidate records. Profiles is the bulk snapshot
// used for leaderboards; its tracked-role field may arrive in any of the
// legacy shapes and is the one input this core must defend against.
type ProfileStore interface {
	Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error)
	Profile(ctx context.Context, candidateID string) (domain.CandidateProfile, error)
}

// RoleRegistry resolves roles and their seat configuration.
type RoleRegistry interface {
	Role(ctx context.Context, roleID string) (domain.Role, error)
}

// SessionRegistry tracks in-flight sessions (in-memory, Redis-marked, etc).
type SessionRegistry interface {
	Put(r *session.Runner)
	Get(sessionID string) (*session.Runner, bool)
	Delete(sessionID string)
}

// ExamService wires the practice-session and ranking use cases together.
type ExamService struct {
	catalog      CatalogReader
	progress     ProgressStore
	profiles     ProfileStore
	roles        RoleRegistry
	sessions     SessionRegistry
	pool         *pool.Builder
	profileLimit int
}

func NewExamService(catalog CatalogReader, progressStore ProgressStore, profiles ProfileStore, roles RoleRegistry, sessions SessionRegistry, profileLimit int) *ExamService {
	return &ExamService{
		catalog:      catalog,
		progress:     progressStore,
		profiles:     profiles,
		roles:        roles,
		sessions:     sessions,
		pool:         pool.NewBuilder(),
		profileLimit: profileLimit,
	}
}

// SessionReport summarizes one finished session plus the merged progress.
type SessionReport struct {
	SessionID string                   `json:"sessionId"`
	RoleID    string                   `json:"roleId,omitempty"`
	Answered  int                      `json:"answered"`
	Correct   int                      `json:"correct"`
	Results   []domain.GradedResult    `json:"results"`
	Progress  domain.CandidateProgress `json:"progress"`
}

// StartSession samples and sequences the question set and registers a new
// runner. roleID ties the session to competitive standing and is validated
// against the registry; filter, when present, bypasses role-level pool
// filtering but the session stays role-tied. An empty pool still yields a
// valid session that finishes with zero results.
func (s *ExamService) StartSession(ctx context.Context, candidateID, subjectID, roleID string, filter *domain.SessionFilter) (*session.Runner, error) {
	var role *domain.Role
	if roleID != "" {
		r, err := s.roles.Role(ctx, roleID)
		if err != nil {
			return nil, err
		}
		role = &r
	}

	catalog, err := s.catalog.Questions(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	questions := s.pool.Build(catalog, subjectID, role, filter)
	runner := session.New(uuid.NewString(), candidateID, roleID, questions)
	s.sessions.Put(runner)
	return runner, nil
}

// Session returns the live runner for transport-level operations.
func (s *ExamService) Session(sessionID string) (*session.Runner, bool) {
	return s.sessions.Get(sessionID)
}

// FinishSession grades the session, folds the results into the candidate's
// stored progress and drops the runner from the registry. Sessions with no
// confirmed answers are discarded without touching stored state.
func (s *ExamService) FinishSession(ctx context.Context, sessionID string) (SessionReport, error) {
	runner, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionReport{}, domain.ErrSessionNotFound
	}

	results := runner.Finish()
	report := SessionReport{
		SessionID: runner.ID(),
		RoleID:    runner.RoleID(),
		Answered:  len(results),
		Results:   results,
	}
	for _, res := range results {
		if res.Correct {
			report.Correct++
		}
	}

	prev, err := s.progress.Load(ctx, runner.CandidateID())
	if err != nil {
		return SessionReport{}, err
	}
	next := progress.Apply(prev, results, runner.RoleID())
	if len(results) > 0 {
		if err := s.progress.Save(ctx, runner.CandidateID(), next); err != nil {
			return SessionReport{}, err
		}
	}
	report.Progress = next

	s.sessions.Delete(sessionID)
	return report, nil
}

// Abandon discards an in-flight session with no persisted side effect.
func (s *ExamService) Abandon(sessionID string) {
	runner, ok := s.sessions.Get(sessionID)
	if !ok || runner.Finished() {
		return
	}
	s.sessions.Delete(sessionID)
}

// Leaderboard composes the requested role's board from the bulk profile
// snapshot, overriding the viewer's stored copy with their live numbers.
func (s *ExamService) Leaderboard(ctx context.Context, roleID, candidateID string) ([]domain.LeaderboardRow, error) {
	self, err := s.selfRecord(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	bulk, err := s.profiles.Profiles(ctx, s.profileLimit)
	if err != nil {
		return nil, err
	}
	return ranking.Compose(bulk, self, roleID), nil
}

// PlacementReport is the quota verdict for one candidate on one role's board.
// Found is false when the candidate does not appear on their effective track,
// in which case there is no feedback to give.
type PlacementReport struct {
	RoleID    string            `json:"roleId"`
	Found     bool              `json:"found"`
	Placement ranking.Placement `json:"placement,omitempty"`
}

// Placement ranks the candidate on the requested role's board and classifies
// them against the role's seat quotas.
func (s *ExamService) Placement(ctx context.Context, roleID, candidateID string) (PlacementReport, error) {
	role, err := s.roles.Role(ctx, roleID)
	if err != nil {
		return PlacementReport{}, err
	}
	self, err := s.selfRecord(ctx, candidateID)
	if err != nil {
		return PlacementReport{}, err
	}
	bulk, err := s.profiles.Profiles(ctx, s.profileLimit)
	if err != nil {
		return PlacementReport{}, err
	}

	rows := ranking.Compose(bulk, self, roleID)
	placement, found := ranking.Evaluate(rows, role, candidateID, self.Profile.Disability)
	return PlacementReport{RoleID: roleID, Found: found, Placement: placement}, nil
}

// selfRecord assembles the viewer's live record: stored profile plus the
// freshest progress, so the self row never lags the bulk snapshot.
func (s *ExamService) selfRecord(ctx context.Context, candidateID string) (domain.CandidateRecord, error) {
	profile, err := s.profiles.Profile(ctx, candidateID)
	if err != nil {
		return domain.CandidateRecord{}, err
	}
	live, err := s.progress.Load(ctx, candidateID)
	if err != nil {
		return domain.CandidateRecord{}, err
	}
	return domain.CandidateRecord{Profile: profile, Progress: live}, nil
}
