package ratecard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"design-folio/model"
)

func TestResolveFeaturedPlan(t *testing.T) {
	gold := model.RatePlan{ID: "gold"}
	silver := model.RatePlan{ID: "silver"}
	platinum := model.RatePlan{ID: "platinum"}
	diamond := model.RatePlan{ID: "diamond"}

	tests := []struct {
		name       string
		plans      []model.RatePlan
		expectedID string
		expectedOk bool
	}{
		{
			name:       "empty list has no featured plan",
			plans:      nil,
			expectedOk: false,
		},
		{
			name:       "single plan falls back to first",
			plans:      []model.RatePlan{gold},
			expectedID: "gold",
			expectedOk: true,
		},
		{
			name:       "two plans without flags fall back to first",
			plans:      []model.RatePlan{gold, silver},
			expectedID: "gold",
			expectedOk: true,
		},
		{
			name:       "three plans without flags fall back to middle",
			plans:      []model.RatePlan{gold, silver, platinum},
			expectedID: "silver",
			expectedOk: true,
		},
		{
			name:       "four plans without flags fall back to first",
			plans:      []model.RatePlan{gold, silver, platinum, diamond},
			expectedID: "gold",
			expectedOk: true,
		},
		{
			name: "explicit flag beats the middle-of-three fallback",
			plans: []model.RatePlan{
				gold, silver, {ID: "platinum", IsFeatured: true},
			},
			expectedID: "platinum",
			expectedOk: true,
		},
		{
			name: "first flagged plan wins when several are flagged",
			plans: []model.RatePlan{
				gold,
				{ID: "silver", IsFeatured: true},
				{ID: "platinum", IsFeatured: true},
			},
			expectedID: "silver",
			expectedOk: true,
		},
		{
			name: "flag on the last of many is honored",
			plans: []model.RatePlan{
				gold, silver, platinum, {ID: "diamond", IsFeatured: true},
			},
			expectedID: "diamond",
			expectedOk: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, ok := ResolveFeaturedPlan(tc.plans)

			assert.Equal(t, tc.expectedOk, ok)
			if tc.expectedOk {
				assert.Equal(t, tc.expectedID, plan.ID)
			}
		})
	}
}
