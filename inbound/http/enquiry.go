package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/errs"
	"design-folio/common/otel"
	"design-folio/common/vars"
	"design-folio/model"
	"design-folio/outbound/store"
	"design-folio/ratecard"
)

type EnquiryHttp struct {
	Store     *store.Store
	Cache     *redis.Client
	Publisher jetstream.Publisher
	Validate  *validator.Validate

	TimeNow func() time.Time

	listPageSize int32
}

func RegisterEnquiryHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	st *store.Store,
	cache *redis.Client,
	publisher jetstream.Publisher,
	validate *validator.Validate,
	adminAuth func(http.Handler) http.Handler,
) *EnquiryHttp {
	in := &EnquiryHttp{
		Store:     st,
		Cache:     cache,
		Publisher: publisher,
		Validate:  validate,
		TimeNow:   time.Now,

		listPageSize: cfg.GetInt32("enquiry.list_page_size"),
	}

	mux.HandleFunc("POST /api/enquiries", in.create)
	mux.Handle("GET /api/admin/enquiries", adminAuth(http.HandlerFunc(in.list)))

	return in
}

func (in EnquiryHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	category, plan, err := in.validateCreateEnquiryRequest(&req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "EnquiryHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create enquiry receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	emailLock, err := in.Cache.SetNX(ctx, fmt.Sprintf(constant.EnquiryEmailLock, req.Email), true, constant.EnquiryEmailLockTTL).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to set enquiry email lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !emailLock {
		slog.DebugContext(ctx, "enquiry recently submitted for email", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "An enquiry from this email was just received, please wait a few minutes"})
		return
	}

	externalId := ulid.Make().String()
	returnId, err := in.Store.InsertEnquiry(ctx, store.InsertEnquiryParams{
		ExternalID: externalId,
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		CategoryID: req.CategoryID,
		PlanID:     req.PlanID,
		Message:    req.Message,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert enquiry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	eventMsg := model.EnquiryReceivedEventMessage{
		ID:         returnId,
		ExternalID: externalId,
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		Message:    req.Message,
		CreatedAt:  in.TimeNow().Format(time.RFC3339),
	}

	if category != nil {
		eventMsg.CategoryLabel = category.Label
	}
	if plan != nil {
		eventMsg.PlanName = plan.Name
		eventMsg.PlanPrice = plan.Price
		eventMsg.PlanCurrency = plan.Currency
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectEnquiryReceived, eventMsg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish enquiry received message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "insert enquiry success", traceIdAttr, slog.Any(constant.LogFieldResponse, returnId))

	writeJSONResponse(w, http.StatusOK, model.CreateEnquiryResponse{
		Id:         returnId,
		ExternalId: externalId,
	})
}

func (in EnquiryHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "EnquiryHttp.list")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	limit := in.listPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 && int32(parsed) <= in.listPageSize {
			limit = int32(parsed)
		}
	}

	var offset int32
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed >= 0 {
			offset = int32(parsed)
		}
	}

	enquiries, err := in.Store.ListEnquiries(ctx, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list enquiries", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	total, err := in.Store.CountEnquiries(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count enquiries", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListEnquiriesResponse{Enquiries: enquiries, Total: total})
}

// validateCreateEnquiryRequest checks struct tags and, when the enquiry
// references a rate category/plan, resolves them against the published
// snapshot so the notification email can name them.
func (in EnquiryHttp) validateCreateEnquiryRequest(req *model.CreateEnquiryRequest) (*model.RateCategory, *model.RatePlan, error) {
	if err := in.Validate.Struct(*req); err != nil {
		return nil, nil, err
	}

	if req.CategoryID == "" {
		return nil, nil, nil
	}

	req.CategoryID = ratecard.NormalizeID(req.CategoryID)

	var category *model.RateCategory
	for _, cat := range vars.GetRateCards() {
		if cat.ID == req.CategoryID {
			category = &cat
			break
		}
	}

	if category == nil {
		return nil, nil, &errs.HttpError{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Data: map[string]any{
				"CategoryId": "not found",
			},
		}
	}

	if req.PlanID == "" {
		return category, nil, nil
	}

	for i := range category.Plans {
		if category.Plans[i].ID == req.PlanID {
			return category, &category.Plans[i], nil
		}
	}

	return nil, nil, &errs.HttpError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Data: map[string]any{
			"PlanId": "not found",
		},
	}
}
