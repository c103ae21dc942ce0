// Package pool selects and orders the eligible question set for one practice
// session.
package pool

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// Builder produces shuffled question sequences. One Builder serves many
// sessions concurrently; the sequence it returns is fixed for the session's
// lifetime.
type Builder struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBuilder() *Builder {
	return &Builder{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Build restricts the catalog to the session's eligible set and returns it in
// pseudo-random order. An explicit filter bypasses role-level filtering
// entirely; without either, only the subject restriction applies. An empty
// result is a valid outcome, not an error.
func (b *Builder) Build(catalog []domain.Question, subjectID string, role *domain.Role, filter *domain.SessionFilter) []domain.Question {
	eligible := Eligible(catalog, subjectID, role, filter)
	b.mu.Lock()
	b.rnd.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	b.mu.Unlock()
	return eligible
}

// Eligible applies the subject restriction plus, in priority order, the
// explicit filter or the role's education level. It copies matches so callers
// can shuffle freely.
func Eligible(catalog []domain.Question, subjectID string, role *domain.Role, filter *domain.SessionFilter) []domain.Question {
	out := make([]domain.Question, 0, len(catalog))
	for _, q := range catalog {
		if q.SubjectID != subjectID {
			continue
		}
		if filter != nil {
			if !matchesFilter(q, *filter) {
				continue
			}
		} else if role != nil && q.EducationLevel != role.EducationLevel {
			continue
		}
		out = append(out, q)
	}
	return out
}

func matchesFilter(q domain.Question, f domain.SessionFilter) bool {
	if f.Board != "" && q.Board != f.Board {
		return false
	}
	if f.Year != 0 && q.Year != f.Year {
		return false
	}
	if f.EducationLevel != "" && q.EducationLevel != f.EducationLevel {
		return false
	}
	return true
}
