package memory

import (
	"context"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
)

// RoleRegistry resolves roles from a static map.
type RoleRegistry struct {
	roles map[string]domain.Role
}

func NewRoleRegistry(roles map[string]domain.Role) *RoleRegistry {
	return &RoleRegistry{roles: roles}
}

func (r *RoleRegistry) Role(_ context.Context, roleID string) (domain.Role, error) {
	if role, ok := r.roles[roleID]; ok {
		return role, nil
	}
	return domain.Role{}, domain.ErrRoleNotFound
}
