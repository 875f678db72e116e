// AngelaMos | 2026
// service_test.go

package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type memRepo struct {
	rows []Address
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]Address, error) {
	var out []Address
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) Create(_ context.Context, a *Address) error {
	a.ID = uuid.NewString()
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memRepo) Update(_ context.Context, a *Address) error {
	for i := range m.rows {
		if m.rows[i].ID == a.ID && m.rows[i].UserID == a.UserID {
			a.Type = m.rows[i].Type
			m.rows[i] = *a
			return nil
		}
	}
	return ErrAddressNotFound
}

func (m *memRepo) Delete(_ context.Context, userID, id string) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}

func sample() *SaveRequest {
	return &SaveRequest{
		Street:  " 1 Main St ",
		City:    "Pune",
		State:   "MH",
		Pin:     "411001",
		Country: "India",
	}
}

func TestSaveCreatesHomeAddress(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	a, err := svc.Save(context.Background(), "u1", sample())
	require.NoError(t, err)
	assert.Equal(t, DefaultType, a.Type)
	assert.Equal(t, "1 Main St", a.Street)
	assert.NotEmpty(t, a.ID)
	assert.Len(t, repo.rows, 1)
}

func TestSaveWithIDUpdatesOwnedAddressOnly(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Save(ctx, "u1", sample())
	require.NoError(t, err)

	req := sample()
	req.ID = created.ID
	req.City = "Mumbai"

	_, err = svc.Save(ctx, "u2", req)
	require.ErrorIs(t, err, ErrAddressNotFound)

	updated, err := svc.Save(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Len(t, repo.rows, 1)
}

func TestDeleteOwnership(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Save(ctx, "u1", sample())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", a.ID), core.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", "nope"), ErrAddressNotFound)
	require.NoError(t, svc.Delete(ctx, "u1", a.ID))
	assert.Empty(t, repo.rows)
}

func TestRequiresUser(t *testing.T) {
	svc := NewService(&memRepo{})

	_, err := svc.List(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	_, err = svc.Save(context.Background(), "", sample())
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
