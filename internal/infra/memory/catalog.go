// Package memory provides in-process implementations of the app collaborator
// interfaces, used by tests, demos and as the fallback when no external
// services are configured.
package memory

import (
	"context"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// Catalog serves questions from a static in-memory slice.
type Catalog struct {
	questions []domain.Question
}

func NewCatalog(questions []domain.Question) *Catalog {
	return &Catalog{questions: questions}
}

// Questions returns the catalog entries for one subject. An unknown subject
// yields an empty slice, not an error.
func (c *Catalog) Questions(_ context.Context, subjectID string) ([]domain.Question, error) {
	out := make([]domain.Question, 0, len(c.questions))
	for _, q := range c.questions {
		if q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	return out, nil
}
