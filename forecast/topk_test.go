package forecast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcanteen/models"
)

func TestTopKRanksByTotal(t *testing.T) {
	totals := []models.ItemTotal{
		{Item: "Tea", Total: 4},
		{Item: "Dosa", Total: 9},
		{Item: "Coffee", Total: 4},
		{Item: "Vada", Total: 1},
	}

	got, err := TopK(totals, 3)
	require.NoError(t, err)
	assert.Equal(t, []models.ItemTotal{
		{Item: "Dosa", Total: 9},
		{Item: "Tea", Total: 4},
		{Item: "Coffee", Total: 4},
	}, got)

	// input is left untouched
	assert.Equal(t, "Tea", totals[0].Item)
}

func TestTopKLargerThanItemCount(t *testing.T) {
	totals := []models.ItemTotal{{Item: "Tea", Total: 2}, {Item: "Coffee", Total: 5}}

	got, err := TopK(totals, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	seen := map[string]bool{}
	for _, it := range got {
		assert.False(t, seen[it.Item], "duplicate %s", it.Item)
		seen[it.Item] = true
	}
}

func TestTopKRejectsNonPositiveK(t *testing.T) {
	_, err := TopK(nil, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
