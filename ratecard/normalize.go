package ratecard

import (
	"fmt"
	"strconv"
	"strings"

	"design-folio/common/errs"
	"design-folio/model"
)

const defaultCurrency = "USD"

// NormalizeCreate validates and reshapes an admin authoring payload into a
// canonical category document. id, label and heading are mandatory; the id
// is lowercased and trimmed before the caller runs its uniqueness check.
func NormalizeCreate(in model.RateCategoryInput) (model.RateCategory, error) {
	id := NormalizeID(strValue(in.ID))
	if id == "" {
		return model.RateCategory{}, errs.ValidationField("id", "required")
	}

	label := strings.TrimSpace(strValue(in.Label))
	if label == "" {
		return model.RateCategory{}, errs.ValidationField("label", "required")
	}

	heading := strings.TrimSpace(strValue(in.Heading))
	if heading == "" {
		return model.RateCategory{}, errs.ValidationField("heading", "required")
	}

	plans, err := normalizePlans(planInputs(in.Plans))
	if err != nil {
		return model.RateCategory{}, err
	}

	deliverables, err := normalizeDeliverables(deliverableInputs(in.Deliverables), planIDSet(plans))
	if err != nil {
		return model.RateCategory{}, err
	}

	return model.RateCategory{
		ID:           id,
		Label:        label,
		Heading:      heading,
		Description:  strings.TrimSpace(strValue(in.Description)),
		Tags:         NormalizeStringList(in.Tags),
		Plans:        plans,
		Deliverables: deliverables,
	}, nil
}

// NormalizeUpdate applies a partial authoring payload on top of an existing
// category. Only fields present in the input are transformed and applied;
// everything else is carried over untouched. The second return reports
// whether the identity changed, so the caller can re-run its uniqueness
// check excluding the entity itself.
func NormalizeUpdate(existing model.RateCategory, in model.RateCategoryInput) (model.RateCategory, bool, error) {
	out := existing
	idChanged := false

	if in.ID != nil {
		id := NormalizeID(*in.ID)
		if id == "" {
			return model.RateCategory{}, false, errs.ValidationField("id", "required")
		}
		idChanged = id != existing.ID
		out.ID = id
	}

	if in.Label != nil {
		label := strings.TrimSpace(*in.Label)
		if label == "" {
			return model.RateCategory{}, false, errs.ValidationField("label", "required")
		}
		out.Label = label
	}

	if in.Heading != nil {
		heading := strings.TrimSpace(*in.Heading)
		if heading == "" {
			return model.RateCategory{}, false, errs.ValidationField("heading", "required")
		}
		out.Heading = heading
	}

	if in.Description != nil {
		out.Description = strings.TrimSpace(*in.Description)
	}

	if in.Tags != nil {
		out.Tags = NormalizeStringList(in.Tags)
	}

	if in.Plans != nil {
		plans, err := normalizePlans(*in.Plans)
		if err != nil {
			return model.RateCategory{}, false, err
		}
		out.Plans = plans
	}

	if in.Deliverables != nil {
		deliverables, err := normalizeDeliverables(*in.Deliverables, planIDSet(out.Plans))
		if err != nil {
			return model.RateCategory{}, false, err
		}
		out.Deliverables = deliverables
	}

	return out, idChanged, nil
}

// NormalizeID canonicalizes a category identity: trimmed, lowercase.
func NormalizeID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeStringList accepts either a comma-separated string or a list and
// returns trimmed, non-empty entries in their original order. Duplicates
// are kept.
func NormalizeStringList(raw any) []string {
	return normalizeSplitList(raw, ",")
}

// NormalizeParagraphs accepts either a string with line breaks or a list
// and returns trimmed, non-empty paragraphs in their original order.
func NormalizeParagraphs(raw any) []string {
	return normalizeSplitList(raw, "\n")
}

func normalizeSplitList(raw any, sep string) []string {
	var parts []string

	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		parts = strings.Split(v, sep)
	case []string:
		parts = v
	case []any:
		parts = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	default:
		return []string{}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func normalizePlans(in []model.RatePlanInput) ([]model.RatePlan, error) {
	out := make([]model.RatePlan, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for i, p := range in {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, errs.ValidationField(fmt.Sprintf("plans[%d].id", i), "required")
		}

		// Plan ids key the deliverable cell lookups; a duplicate would make
		// cells ambiguous, so it is rejected here.
		if _, dup := seen[id]; dup {
			return nil, errs.ValidationField(fmt.Sprintf("plans[%d].id", i), "duplicate")
		}
		seen[id] = struct{}{}

		currency := strings.ToUpper(strings.TrimSpace(p.Currency))
		if currency == "" {
			currency = defaultCurrency
		}

		out = append(out, model.RatePlan{
			ID:          id,
			Name:        strings.TrimSpace(p.Name),
			Price:       coercePrice(p.Price),
			Currency:    currency,
			Description: strings.TrimSpace(p.Description),
			Tagline:     strings.TrimSpace(p.Tagline),
			IsFeatured:  coerceBool(p.IsFeatured),
			BadgeType:   strings.TrimSpace(p.BadgeType),
			BadgeLabel:  strings.TrimSpace(p.BadgeLabel),
		})
	}

	return out, nil
}

func normalizeDeliverables(in []model.DeliverableInput, planIDs map[string]struct{}) ([]model.Deliverable, error) {
	out := make([]model.Deliverable, 0, len(in))

	for i, d := range in {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, errs.ValidationField(fmt.Sprintf("deliverables[%d].id", i), "required")
		}

		mode := model.DeliverableModeBoolean
		if d.Mode == model.DeliverableModeText {
			mode = model.DeliverableModeText
		}

		out = append(out, model.Deliverable{
			ID:      id,
			Label:   strings.TrimSpace(d.Label),
			Mode:    mode,
			PerPlan: normalizePerPlan(d.PerPlan, planIDs),
		})
	}

	return out, nil
}

// normalizePerPlan drops nil values and empty-after-trim strings (the key
// is removed, never stored as ""), passes booleans and numbers through, and
// prunes keys that reference no plan in the same payload.
func normalizePerPlan(raw map[string]any, planIDs map[string]struct{}) map[string]any {
	out := make(map[string]any, len(raw))

	for planID, v := range raw {
		if _, ok := planIDs[planID]; !ok {
			continue
		}

		switch val := v.(type) {
		case nil:
			continue
		case string:
			trimmed := strings.TrimSpace(val)
			if trimmed == "" {
				continue
			}
			out[planID] = trimmed
		case bool, float64, int, int32, int64:
			out[planID] = val
		default:
			// Objects and arrays have no cell meaning, drop them.
			continue
		}
	}

	return out
}

// coercePrice turns numbers and numeric strings into a non-negative price,
// defaulting to 0 on absent or unparseable input.
func coercePrice(raw any) float64 {
	var f float64

	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if f < 0 {
		return 0
	}

	return f
}

// coerceBool is a truthy passthrough: booleans as-is, non-zero numbers and
// non-empty strings are true.
func coerceBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != ""
	default:
		return false
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func planInputs(p *[]model.RatePlanInput) []model.RatePlanInput {
	if p == nil {
		return nil
	}
	return *p
}

func deliverableInputs(d *[]model.DeliverableInput) []model.DeliverableInput {
	if d == nil {
		return nil
	}
	return *d
}

func planIDSet(plans []model.RatePlan) map[string]struct{} {
	set := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		set[p.ID] = struct{}{}
	}
	return set
}
