package memory

import (
	"context"
	"slices"
	"strings"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
)

type adminRepo struct{ s *Store }

func (r adminRepo) List(_ context.Context) ([]models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := slices.Clone(r.s.admins)
	if out == nil {
		out = []models.Admin{}
	}
	return out, nil
}

func (r adminRepo) find(pred func(models.Admin) bool) (models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i := slices.IndexFunc(r.s.admins, pred); i >= 0 {
		return r.s.admins[i], nil
	}
	return models.Admin{}, domain.NotFoundError{Resource: "admin user"}
}

func (r adminRepo) GetByID(_ context.Context, id int64) (models.Admin, error) {
	return r.find(func(a models.Admin) bool { return a.ID == id })
}

func (r adminRepo) GetByUsername(_ context.Context, username string) (models.Admin, error) {
	return r.find(func(a models.Admin) bool { return strings.EqualFold(a.Username, username) })
}

func (r adminRepo) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	return r.find(func(a models.Admin) bool { return strings.EqualFold(a.Email, email) })
}

func (r adminRepo) Create(_ context.Context, a models.Admin) (models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slices.ContainsFunc(r.s.admins, func(x models.Admin) bool {
		return strings.EqualFold(x.Username, a.Username) || strings.EqualFold(x.Email, a.Email)
	}) {
		return a, domain.ConflictError{Msg: "Username or email already registered"}
	}
	a.ID = r.s.nextAdmin
	r.s.nextAdmin++
	a.CreatedAt = r.s.Now()
	r.s.admins = append(r.s.admins, a)
	return a, nil
}

func (r adminRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := slices.IndexFunc(r.s.admins, func(x models.Admin) bool { return x.ID == id })
	if i < 0 {
		return domain.NotFoundError{Resource: "admin user"}
	}
	r.s.admins = slices.Delete(r.s.admins, i, i+1)
	return nil
}

func (r adminRepo) TouchLogin(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.admins {
		if r.s.admins[i].ID == id {
			now := r.s.Now()
			r.s.admins[i].LastLogin = &now
			return nil
		}
	}
	return domain.NotFoundError{Resource: "admin user"}
}
