package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/eventory/internal/domain"
)

type memCategoryRepo struct {
	byID   map[int64]*domain.Category
	inUse  map[int64]bool
	nextID int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{byID: map[int64]*domain.Category{}, inUse: map[int64]bool{}}
}

func (r *memCategoryRepo) Create(_ context.Context, c *domain.Category) (int64, error) {
	for _, other := range r.byID {
		if other.Name == c.Name {
			return 0, domain.ErrConflict("category not created", "name already taken")
		}
	}
	r.nextID++
	cp := *c
	cp.ID = r.nextID
	r.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("category not found", fmt.Sprintf("no category with id=%d", id))
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) List(_ context.Context, from, size int) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) InUse(_ context.Context, id int64) (bool, error) {
	return r.inUse[id], nil
}

type memUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	for _, other := range r.byID {
		if other.Email == u.Email {
			return 0, domain.ErrConflict("user not created", "email already taken")
		}
	}
	r.nextID++
	cp := *u
	cp.ID = r.nextID
	r.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("user not found", fmt.Sprintf("no user with id=%d", id))
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func TestCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("create_and_rename", func(t *testing.T) {
		repo := newMemCategoryRepo()
		svc := New(repo, newMemUserRepo())

		c, err := svc.CreateCategory(ctx, "  concerts ")
		require.NoError(t, err)
		assert.Equal(t, "concerts", c.Name)
		assert.NotZero(t, c.ID)

		renamed, err := svc.UpdateCategory(ctx, c.ID, "live shows")
		require.NoError(t, err)
		assert.Equal(t, "live shows", renamed.Name)
	})

	t.Run("duplicate_name_conflicts", func(t *testing.T) {
		repo := newMemCategoryRepo()
		svc := New(repo, newMemUserRepo())

		_, err := svc.CreateCategory(ctx, "concerts")
		require.NoError(t, err)
		_, err = svc.CreateCategory(ctx, "concerts")
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		_, err := svc.CreateCategory(ctx, "   ")
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})

	t.Run("delete_empty_category", func(t *testing.T) {
		repo := newMemCategoryRepo()
		svc := New(repo, newMemUserRepo())
		c, err := svc.CreateCategory(ctx, "concerts")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCategory(ctx, c.ID))
		_, err = svc.GetCategory(ctx, c.ID)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("delete_category_with_events_conflicts", func(t *testing.T) {
		repo := newMemCategoryRepo()
		svc := New(repo, newMemUserRepo())
		c, err := svc.CreateCategory(ctx, "concerts")
		require.NoError(t, err)
		repo.inUse[c.ID] = true

		err = svc.DeleteCategory(ctx, c.ID)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("rename_unknown_category", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		_, err := svc.UpdateCategory(ctx, 42, "concerts")
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		u, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		_, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
		require.NoError(t, err)
		_, err = svc.CreateUser(ctx, "Grace", "ada@example.com")
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("malformed_email_rejected", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		_, err := svc.CreateUser(ctx, "Ada", "not-an-email")
		assert.Equal(t, domain.KindIncorrectParameters, domain.KindOf(err))
	})

	t.Run("delete_unknown_user", func(t *testing.T) {
		svc := New(newMemCategoryRepo(), newMemUserRepo())
		err := svc.DeleteUser(ctx, 42)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}
