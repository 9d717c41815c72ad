package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewsFixture(ratings []int, active []bool) []*Review {
	out := make([]*Review, len(ratings))
	for i := range ratings {
		out[i] = &Review{Rating: ratings[i], IsActive: active[i]}
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name            string
		ratings         []int
		active          []bool
		includeInactive bool
		wantCount       int
		wantAverage     float64
		wantSum         int
	}{
		{
			name:    "no reviews",
			ratings: nil, active: nil,
			includeInactive: false,
			wantCount:       0, wantAverage: 0, wantSum: 0,
		},
		{
			name:    "all active",
			ratings: []int{5, 4, 3}, active: []bool{true, true, true},
			includeInactive: false,
			wantCount:       3, wantAverage: 4, wantSum: 12,
		},
		{
			name:    "inactive excluded for public",
			ratings: []int{5, 1}, active: []bool{true, false},
			includeInactive: false,
			wantCount:       1, wantAverage: 5, wantSum: 5,
		},
		{
			name:    "inactive included for administrators",
			ratings: []int{5, 1}, active: []bool{true, false},
			includeInactive: true,
			wantCount:       2, wantAverage: 3, wantSum: 6,
		},
		{
			name:    "average rounded to two decimals",
			ratings: []int{5, 4, 4}, active: []bool{true, true, true},
			includeInactive: false,
			wantCount:       3, wantAverage: 4.33, wantSum: 13,
		},
		{
			name:    "only inactive reviews hidden from public",
			ratings: []int{2, 2}, active: []bool{false, false},
			includeInactive: false,
			wantCount:       0, wantAverage: 0, wantSum: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(reviewsFixture(tt.ratings, tt.active), tt.includeInactive)
			assert.Equal(t, tt.wantCount, agg.Count)
			assert.Equal(t, tt.wantAverage, agg.Average)
			assert.Equal(t, tt.wantSum, agg.Sum)
		})
	}
}

func TestVisibilityStatus(t *testing.T) {
	assert.Equal(t, "ACTIVE", (&Review{IsActive: true}).visibilityStatus())
	assert.Equal(t, "INACTIVE", (&Review{}).visibilityStatus())
}
