package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"design-folio/model"
)

func newTestEnquiryEvent() EnquiryEvent {
	return EnquiryEvent{
		NotifyTo:       "studio@example.com",
		PriceFormatter: message.NewPrinter(language.English),
		Timeout:        time.Second,
	}
}

func TestEnquiryEventInterestLine(t *testing.T) {
	in := newTestEnquiryEvent()

	testCases := []struct {
		name     string
		req      model.EnquiryReceivedEventMessage
		expected string
	}{
		{
			name:     "no category",
			req:      model.EnquiryReceivedEventMessage{},
			expected: "-",
		},
		{
			name:     "category only",
			req:      model.EnquiryReceivedEventMessage{CategoryLabel: "Brand Identity"},
			expected: "Brand Identity",
		},
		{
			name: "category and plan with localized price",
			req: model.EnquiryReceivedEventMessage{
				CategoryLabel: "Brand Identity",
				PlanName:      "Gold",
				PlanPrice:     650,
				PlanCurrency:  "USD",
			},
			expected: "Brand Identity / Gold (USD 650)",
		},
		{
			name: "price grouping",
			req: model.EnquiryReceivedEventMessage{
				CategoryLabel: "Web Design",
				PlanName:      "Platinum",
				PlanPrice:     1250,
				PlanCurrency:  "USD",
			},
			expected: "Web Design / Platinum (USD 1,250)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, in.interestLine(tc.req))
		})
	}
}

func TestEnquiryEventBuildNotificationBody(t *testing.T) {
	in := newTestEnquiryEvent()

	body := in.buildNotificationBody(model.EnquiryReceivedEventMessage{
		ExternalID:    "01HXY",
		Name:          "Jane",
		Email:         "jane@example.com",
		Company:       "Acme",
		CategoryLabel: "Brand Identity",
		PlanName:      "Gold",
		PlanPrice:     650,
		PlanCurrency:  "USD",
		Message:       "Hello there",
		CreatedAt:     "2025-03-10T09:30:00Z",
	})

	assert.Contains(t, body, "Reference: 01HXY")
	assert.Contains(t, body, "Name: Jane")
	assert.Contains(t, body, "Interested In: Brand Identity / Gold (USD 650)")
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, "Received at: 2025-03-10T09:30:00Z")
}

func TestEnquiryEventBuildAcknowledgementBody(t *testing.T) {
	in := newTestEnquiryEvent()

	t.Run("with interest", func(t *testing.T) {
		body := in.buildAcknowledgementBody(model.EnquiryReceivedEventMessage{
			ExternalID:    "01HXY",
			Name:          "Jane",
			CategoryLabel: "Brand Identity",
		})

		assert.Contains(t, body, "Hi Jane,")
		assert.Contains(t, body, "Your reference: 01HXY")
		assert.Contains(t, body, "You asked about: Brand Identity")
	})

	t.Run("without interest", func(t *testing.T) {
		body := in.buildAcknowledgementBody(model.EnquiryReceivedEventMessage{
			ExternalID: "01HXY",
			Name:       "Jane",
		})

		assert.NotContains(t, body, "You asked about")
	})
}

func TestEnquiryEventReceivedHandlerDropsMalformedPayload(t *testing.T) {
	in := newTestEnquiryEvent()

	err := in.ReceivedHandler(context.Background(), []byte(`{invalid`))
	assert.NoError(t, err)
}
