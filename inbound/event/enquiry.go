package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/message"

	"design-folio/common/constant"
	"design-folio/model"
	emailOutbound "design-folio/outbound/email"
)

type EnquiryEvent struct {
	EmailOutbound  *emailOutbound.EmailOutbound
	NotifyTo       string
	PriceFormatter *message.Printer

	Timeout time.Duration
}

// ReceivedHandler turns a persisted enquiry into two emails: a notification
// to the studio inbox and an acknowledgement back to the sender. A malformed
// payload is dropped rather than retried.
func (in EnquiryEvent) ReceivedHandler(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	var req model.EnquiryReceivedEventMessage
	err := json.Unmarshal(msg, &req)
	if err != nil {
		slog.WarnContext(ctx, "enquiry received event unmarshal error", slog.Any(constant.LogFieldErr, err))
		return nil
	}

	traceIdAttr := slog.String(constant.LogFieldTraceId, ulid.Make().String())
	reqAttr := slog.Any(constant.LogFieldPayload, string(msg))

	err = in.EmailOutbound.Send([]string{in.NotifyTo}, "New enquiry: "+req.Name, in.buildNotificationBody(req))
	if err != nil {
		slog.ErrorContext(ctx, "enquiry notification email error", slog.Any(constant.LogFieldErr, err), reqAttr, traceIdAttr)
		return err
	}

	err = in.EmailOutbound.Send([]string{req.Email}, "Thanks for your enquiry", in.buildAcknowledgementBody(req))
	if err != nil {
		// The studio already has the enquiry; a failed acknowledgement is
		// not worth a redelivery that would duplicate the notification.
		slog.ErrorContext(ctx, "enquiry acknowledgement email error", slog.Any(constant.LogFieldErr, err), reqAttr, traceIdAttr)
	}

	return nil
}

func (in EnquiryEvent) buildNotificationBody(req model.EnquiryReceivedEventMessage) string {
	return fmt.Sprintf(constant.EmailEnquiryNotificationTemplate,
		req.ExternalID,
		req.Name,
		req.Email,
		req.Company,
		in.interestLine(req),
		req.Message,
		req.CreatedAt,
	)
}

func (in EnquiryEvent) buildAcknowledgementBody(req model.EnquiryReceivedEventMessage) string {
	interest := ""
	if line := in.interestLine(req); line != "-" {
		interest = fmt.Sprintf("You asked about: %s\n", line)
	}

	return fmt.Sprintf(constant.EmailEnquiryAcknowledgementTemplate, req.Name, req.ExternalID, interest)
}

// interestLine renders "Brand Identity / Gold (USD 650)" style summaries,
// with the plan price localized by the configured printer.
func (in EnquiryEvent) interestLine(req model.EnquiryReceivedEventMessage) string {
	if req.CategoryLabel == "" {
		return "-"
	}

	if req.PlanName == "" {
		return req.CategoryLabel
	}

	price := in.PriceFormatter.Sprintf("%s %.0f", req.PlanCurrency, req.PlanPrice)
	return fmt.Sprintf("%s / %s (%s)", req.CategoryLabel, req.PlanName, price)
}
