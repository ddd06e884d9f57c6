// Package catalog manages the admin-curated reference data: event categories
// and platform users.
package catalog

import (
	"context"
	"fmt"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type CategoryRepo interface {
	// Create persists a category; a duplicate name surfaces as a Conflict.
	Create(ctx context.Context, c *domain.Category) (int64, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, from, size int) ([]*domain.Category, error)

	// InUse reports whether any event references the category.
	InUse(ctx context.Context, id int64) (bool, error)
}

type UserRepo interface {
	// Create persists a user; a duplicate email surfaces as a Conflict.
	Create(ctx context.Context, u *domain.User) (int64, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns users filtered by ids when ids is non-empty, paged
	// otherwise.
	List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error)
}

type Service struct {
	categories CategoryRepo
	users      UserRepo
}

func New(categories CategoryRepo, users UserRepo) *Service {
	return &Service{categories: categories, users: users}
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	c, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return nil, err
	}
	c, err := domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that still has events.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	used, err := s.categories.InUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrConflict("category not deleted",
			fmt.Sprintf("category %d still has events", id))
	}
	return s.categories.Delete(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, from, size int) ([]*domain.Category, error) {
	normalizePage(&from, &size)
	return s.categories.List(ctx, from, size)
}

func (s *Service) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	u, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	normalizePage(&from, &size)
	return s.users.List(ctx, ids, from, size)
}

func normalizePage(from, size *int) {
	if *size <= 0 {
		*size = 10
	}
	if *from < 0 {
		*from = 0
	}
	*from = (*from / *size) * *size
}
