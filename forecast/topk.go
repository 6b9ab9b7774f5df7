package forecast

import (
	"fmt"
	"sort"

	"smartcanteen/models"
)

// TopK ranks items by total historical quantity, highest first, and returns
// at most k of them. Equal totals keep their input order.
func TopK(totals []models.ItemTotal, k int) ([]models.ItemTotal, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: top must be positive, got %d", ErrInvalidArgument, k)
	}

	ranked := make([]models.ItemTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}
