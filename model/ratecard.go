package model

// RateCategory is the persisted document shape consumed by the rendering
// layer. Field names are part of the read contract, do not rename.
type RateCategory struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Heading      string        `json:"heading"`
	Description  string        `json:"description"`
	Tags         []string      `json:"tags"`
	Plans        []RatePlan    `json:"plans"`
	Deliverables []Deliverable `json:"deliverables"`
}

type RatePlan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Tagline     string  `json:"tagline"`
	IsFeatured  bool    `json:"isFeatured"`
	BadgeType   string  `json:"badgeType,omitempty"`
	BadgeLabel  string  `json:"badgeLabel,omitempty"`
}

const (
	DeliverableModeBoolean = "boolean"
	DeliverableModeText    = "text"
)

// Deliverable is one row of the plan-comparison matrix. PerPlan is sparse:
// a plan id missing from the map means "not included". Values are whatever
// JSON gave us (bool, float64 or string); display resolution happens in the
// ratecard package.
type Deliverable struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Mode    string         `json:"mode"`
	PerPlan map[string]any `json:"perPlan"`
}

// RateCategoryInput is the loosely-typed admin authoring payload. List
// fields may arrive as a comma/newline separated string or as a JSON array,
// numeric fields as numbers or strings. Pointer fields distinguish "absent"
// from "set to zero value" for partial updates.
type RateCategoryInput struct {
	ID           *string             `json:"id"`
	Label        *string             `json:"label"`
	Heading      *string             `json:"heading"`
	Description  *string             `json:"description"`
	Tags         any                 `json:"tags"`
	Plans        *[]RatePlanInput    `json:"plans"`
	Deliverables *[]DeliverableInput `json:"deliverables"`
}

type RatePlanInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       any    `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Tagline     string `json:"tagline"`
	IsFeatured  any    `json:"isFeatured"`
	BadgeType   string `json:"badgeType"`
	BadgeLabel  string `json:"badgeLabel"`
}

type DeliverableInput struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Mode    string         `json:"mode"`
	PerPlan map[string]any `json:"perPlan"`
}

const (
	CellModeIncluded   = "included"
	CellModeAbsent     = "absent"
	CellModeQuantified = "quantified"
)

// ResolvedCell is the display-time resolution of one (deliverable, plan)
// intersection.
type ResolvedCell struct {
	Mode string `json:"mode"`
	Text string `json:"text,omitempty"`
}

// DeliverableRow aligns a deliverable's resolved cells to the parent
// category's plan order, left to right.
type DeliverableRow struct {
	DeliverableID string         `json:"deliverableId"`
	Label         string         `json:"label"`
	Mode          string         `json:"mode"`
	Cells         []ResolvedCell `json:"cells"`
}

type RateCategoryDetailResponse struct {
	RateCategory
	FeaturedPlanID string           `json:"featuredPlanId,omitempty"`
	Rows           []DeliverableRow `json:"rows"`
}

type ListRateCategoriesResponse struct {
	Categories []RateCategory `json:"categories"`
}
