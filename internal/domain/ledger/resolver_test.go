package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccstock/internal/core/types"
)

func TestResolver_PreviousDayClosing(t *testing.T) {
	store := newMemStore()
	a100 := store.addType("A100")
	require.NoError(t, store.Upsert(context.Background(), &Entry{
		Date:          types.MustParseDate("2023-12-31"),
		ProductTypeID: a100,
		OpeningStock:  5,
		Production:    10,
		Spoilage:      20,
	}))

	r := NewResolver(store)

	opening, inherited, err := r.Resolve(context.Background(), types.MustParseDate("2024-01-01"), a100)
	require.NoError(t, err)
	assert.True(t, inherited)
	assert.EqualValues(t, -5, opening)

	opening, err = r.ResolveOpeningStock(context.Background(), types.MustParseDate("2024-01-03"), a100)
	require.NoError(t, err)
	assert.Zero(t, opening)
}

func TestResolver_StorageError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("timeout")

	_, _, err := NewResolver(store).Resolve(context.Background(), types.MustParseDate("2024-01-01"), store.addType("A100"))
	assert.ErrorIs(t, err, store.getErr)
}

func TestThresholds_Classify(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, StatusCritical, th.Classify(-3))
	assert.Equal(t, StatusCritical, th.Classify(9))
	assert.Equal(t, StatusLow, th.Classify(10))
	assert.Equal(t, StatusLow, th.Classify(49))
	assert.Equal(t, StatusNormal, th.Classify(50))
}

func TestComputeClosing(t *testing.T) {
	assert.EqualValues(t, 40, ComputeClosing(0, 50, 10, 0))
	assert.EqualValues(t, 50, ComputeClosing(40, 20, 5, 5))
	assert.EqualValues(t, -10, ComputeClosing(0, 0, 10, 0))
}
