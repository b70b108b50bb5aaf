package ratecard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"design-folio/model"
)

// ResolveCell maps a raw perPlan value to its display mode. Resolution is
// total: every bool, number, string or nil input lands in exactly one of
// included, absent or quantified.
//
// The predicate order matters. Only false, nil, "" and "-" collapse to
// absent; numeric zero stays quantified and renders as "0".
func ResolveCell(raw any) model.ResolvedCell {
	switch v := raw.(type) {
	case nil:
		return model.ResolvedCell{Mode: model.CellModeAbsent}
	case bool:
		if v {
			return model.ResolvedCell{Mode: model.CellModeIncluded}
		}
		return model.ResolvedCell{Mode: model.CellModeAbsent}
	case string:
		if v == "" || v == "-" {
			return model.ResolvedCell{Mode: model.CellModeAbsent}
		}
		if strings.EqualFold(v, "check") {
			return model.ResolvedCell{Mode: model.CellModeIncluded}
		}
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: v}
	case float64:
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: formatNumber(v)}
	case int:
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: strconv.Itoa(v)}
	case int32:
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: strconv.FormatInt(int64(v), 10)}
	case int64:
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: strconv.FormatInt(v, 10)}
	default:
		return model.ResolvedCell{Mode: model.CellModeQuantified, Text: fmt.Sprint(v)}
	}
}

// formatNumber renders integral floats without a decimal part so that a
// JSON 2 comes back as "2", not "2.000000".
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ResolveRows flattens a category's deliverable matrix into display rows,
// one resolved cell per plan, aligned to the category's plan order.
func ResolveRows(cat model.RateCategory) []model.DeliverableRow {
	rows := make([]model.DeliverableRow, 0, len(cat.Deliverables))
	for _, d := range cat.Deliverables {
		cells := make([]model.ResolvedCell, 0, len(cat.Plans))
		for _, p := range cat.Plans {
			raw, ok := d.PerPlan[p.ID]
			if !ok {
				cells = append(cells, model.ResolvedCell{Mode: model.CellModeAbsent})
				continue
			}
			cells = append(cells, ResolveCell(raw))
		}

		rows = append(rows, model.DeliverableRow{
			DeliverableID: d.ID,
			Label:         d.Label,
			Mode:          d.Mode,
			Cells:         cells,
		})
	}

	return rows
}
