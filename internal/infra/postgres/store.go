// Package postgres loads catalog, profile and role data stored as JSONB and
// persists candidate progress.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// Store implements the app collaborator interfaces on top of a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Questions loads the full catalog slice for one subject.
func (s *Store) Questions(ctx context.Context, subjectID string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM questions WHERE subject_id=$1`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Profiles returns stored profiles joined with their progress snapshot,
// newest first, bounded by limit.
func (s *Store) Profiles(ctx context.Context, limit int) ([]domain.CandidateRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.data, COALESCE(g.data, '{}'::jsonb)
		FROM profiles p
		LEFT JOIN progress g ON g.candidate_id = p.id
		ORDER BY p.updated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	defer rows.Close()

	var records []domain.CandidateRecord
	for rows.Next() {
		var rawProfile, rawProgress []byte
		if err := rows.Scan(&rawProfile, &rawProgress); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		var rec domain.CandidateRecord
		if err := json.Unmarshal(rawProfile, &rec.Profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		if err := json.Unmarshal(rawProgress, &rec.Progress); err != nil {
			return nil, fmt.Errorf("unmarshal progress: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Profile(ctx context.Context, candidateID string) (domain.CandidateProfile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM profiles WHERE id=$1`, candidateID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CandidateProfile{}, domain.ErrCandidateNotFound
	}
	if err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("load profile: %w", err)
	}
	var profile domain.CandidateProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return domain.CandidateProfile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, nil
}

func (s *Store) Role(ctx context.Context, roleID string) (domain.Role, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM roles WHERE id=$1`, roleID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Role{}, domain.ErrRoleNotFound
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("load role: %w", err)
	}
	var role domain.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		return domain.Role{}, fmt.Errorf("unmarshal role: %w", err)
	}
	return role, nil
}

// Load returns zero progress for candidates with no stored row.
func (s *Store) Load(ctx context.Context, candidateID string) (domain.CandidateProgress, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM progress WHERE candidate_id=$1`, candidateID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CandidateProgress{}, nil
	}
	if err != nil {
		return domain.CandidateProgress{}, fmt.Errorf("load progress: %w", err)
	}
	var p domain.CandidateProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.CandidateProgress{}, fmt.Errorf("unmarshal progress: %w", err)
	}
	return p, nil
}

// Save upserts the whole progress record; the row-level write keeps the merge
// atomic per candidate.
func (s *Store) Save(ctx context.Context, candidateID string, p domain.CandidateProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO progress (candidate_id, data, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (candidate_id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		candidateID, data)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
