package pba

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
)

type memRepo struct {
	byID    map[id.ID]ProductType
	listErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[id.ID]ProductType)}
}

func (r *memRepo) List(ctx context.Context) ([]ProductType, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]ProductType, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memRepo) GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]ProductType, error) {
	out := make(map[id.ID]ProductType)
	for _, i := range ids {
		if p, ok := r.byID[i]; ok {
			out[i] = p
		}
	}
	return out, nil
}

func (r *memRepo) GetByCode(ctx context.Context, code string) (*ProductType, error) {
	for _, p := range r.byID {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, apperror.NewNotFound("pba type", code)
}

func (r *memRepo) Create(ctx context.Context, p *ProductType) error {
	r.byID[p.ID] = *p
	return nil
}

func TestService_RegisterIsIdempotentByCode(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	first, created, err := svc.Register(ctx, " A100 ", "Pain blanc")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "A100", first.Code)

	second, created, err := svc.Register(ctx, "A100", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_RegisterRequiresCode(t *testing.T) {
	svc := NewService(newMemRepo())

	_, _, err := svc.Register(context.Background(), "  ", "x")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestService_ListOrderedByCode(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for _, code := range []string{"B200", "A100", "C300"} {
		_, _, err := svc.Register(ctx, code, "")
		require.NoError(t, err)
	}

	types, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, []string{"A100", "B200", "C300"}, []string{types[0].Code, types[1].Code, types[2].Code})
}

func TestService_ListStorageFailure(t *testing.T) {
	repo := newMemRepo()
	repo.listErr = errors.New("connection refused")

	_, err := NewService(repo).List(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
}
