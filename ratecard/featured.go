package ratecard

import "design-folio/model"

// ResolveFeaturedPlan picks the single visually emphasized plan:
// the first explicitly flagged plan wins, otherwise the middle plan when
// exactly three exist, otherwise the first. Empty list has no featured plan.
func ResolveFeaturedPlan(plans []model.RatePlan) (model.RatePlan, bool) {
	if len(plans) == 0 {
		return model.RatePlan{}, false
	}

	for _, p := range plans {
		if p.IsFeatured {
			return p, true
		}
	}

	if len(plans) == 3 {
		return plans[1], true
	}

	return plans[0], true
}
