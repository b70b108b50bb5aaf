package model

import "time"

type CreateEnquiryRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Company    string `json:"company" validate:"max=100"`
	CategoryID string `json:"category_id" validate:"max=64"`
	PlanID     string `json:"plan_id" validate:"max=64"`
	Message    string `json:"message" validate:"required,max=4000"`
}

type CreateEnquiryResponse struct {
	Id         int32  `json:"id"`
	ExternalId string `json:"external_id"`
}

type Enquiry struct {
	ID         int32     `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company"`
	CategoryID string    `json:"category_id"`
	PlanID     string    `json:"plan_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListEnquiriesResponse struct {
	Enquiries []Enquiry `json:"enquiries"`
	Total     int64     `json:"total"`
}

type EnquiryReceivedEventMessage struct {
	ID            int32   `json:"id"`
	ExternalID    string  `json:"external_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Company       string  `json:"company"`
	CategoryLabel string  `json:"category_label"`
	PlanName      string  `json:"plan_name"`
	PlanPrice     float64 `json:"plan_price"`
	PlanCurrency  string  `json:"plan_currency"`
	Message       string  `json:"message"`
	CreatedAt     string  `json:"created_at"`
}
