package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/errs"
	"design-folio/common/otel"
	"design-folio/common/vars"
	"design-folio/model"
	"design-folio/outbound/store"
	"design-folio/ratecard"
)

type RateCardHttp struct {
	Store *store.Store
	Cache *redis.Client
}

func RegisterRateCardHttp(
	mux *http.ServeMux,
	st *store.Store,
	cache *redis.Client,
	adminAuth func(http.Handler) http.Handler,
) *RateCardHttp {
	in := &RateCardHttp{Store: st, Cache: cache}

	mux.HandleFunc("GET /api/rate-cards", in.list)
	mux.HandleFunc("GET /api/rate-cards/{id}", in.get)

	mux.Handle("POST /api/admin/rate-cards", adminAuth(http.HandlerFunc(in.create)))
	mux.Handle("PATCH /api/admin/rate-cards/{id}", adminAuth(http.HandlerFunc(in.update)))
	mux.Handle("DELETE /api/admin/rate-cards/{id}", adminAuth(http.HandlerFunc(in.delete)))

	return in
}

func (in *RateCardHttp) list(w http.ResponseWriter, r *http.Request) {
	snapshot := vars.GetRateCards()
	if snapshot != nil {
		writeJSONResponse(w, http.StatusOK, model.ListRateCategoriesResponse{Categories: snapshot})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "RateCardHttp.list")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.DebugContext(ctx, "rate card snapshot cold, falling back", traceIdAttr)

	cached, err := in.Cache.Get(ctx, constant.RateCardSnapshotKey).Bytes()
	if err == nil {
		var categories []model.RateCategory
		if err := json.Unmarshal(cached, &categories); err == nil {
			vars.SetRateCards(categories)
			writeJSONResponse(w, http.StatusOK, model.ListRateCategoriesResponse{Categories: categories})
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.ErrorContext(ctx, "failed to read rate card cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	categories, err := in.Store.ListRateCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list rate categories", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.publishSnapshot(ctx, categories)

	writeJSONResponse(w, http.StatusOK, model.ListRateCategoriesResponse{Categories: categories})
}

func (in *RateCardHttp) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "RateCardHttp.get")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	cat, err := in.Store.GetRateCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, errs.NotFound("Rate category not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to get rate category", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp := model.RateCategoryDetailResponse{
		RateCategory: cat,
		Rows:         ratecard.ResolveRows(cat),
	}

	if featured, ok := ratecard.ResolveFeaturedPlan(cat.Plans); ok {
		resp.FeaturedPlanID = featured.ID
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in *RateCardHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.RateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "RateCardHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create rate category receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	cat, err := ratecard.NormalizeCreate(req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	exists, err := in.Store.RateCategoryExists(ctx, cat.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check rate category existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if exists {
		writeErrorResponse(w, errs.Conflict("Rate category id already in use"))
		return
	}

	if err := in.Store.InsertRateCategory(ctx, cat); err != nil {
		if store.IsUniqueViolation(err) {
			writeErrorResponse(w, errs.Conflict("Rate category id already in use"))
			return
		}
		slog.ErrorContext(ctx, "failed to insert rate category", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	in.refreshSnapshot(ctx)

	slog.InfoContext(ctx, "create rate category success", traceIdAttr, slog.Any(constant.LogFieldResponse, cat.ID))

	writeJSONResponse(w, http.StatusCreated, cat)
}

func (in *RateCardHttp) update(w http.ResponseWriter, r *http.Request) {
	var req model.RateCategoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "RateCardHttp.update")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "update rate category receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	existing, err := in.Store.GetRateCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, errs.NotFound("Rate category not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to get rate category", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	updated, idChanged, err := ratecard.NormalizeUpdate(existing, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	if idChanged {
		exists, err := in.Store.RateCategoryExists(ctx, updated.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check rate category existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		if exists {
			writeErrorResponse(w, errs.Conflict("Rate category id already in use"))
			return
		}
	}

	affected, err := in.Store.UpdateRateCategory(ctx, id, updated)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeErrorResponse(w, errs.Conflict("Rate category id already in use"))
			return
		}
		slog.ErrorContext(ctx, "failed to update rate category", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Rate category not found"))
		return
	}

	in.refreshSnapshot(ctx)

	slog.InfoContext(ctx, "update rate category success", traceIdAttr, slog.Any(constant.LogFieldResponse, updated.ID))

	writeJSONResponse(w, http.StatusOK, updated)
}

func (in *RateCardHttp) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "RateCardHttp.delete")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "delete rate category receive request", traceIdAttr)

	affected, err := in.Store.DeleteRateCategory(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete rate category", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Rate category not found"))
		return
	}

	in.refreshSnapshot(ctx)

	slog.InfoContext(ctx, "delete rate category success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.AckResponse{Ok: true})
}

// refreshSnapshot reloads the published snapshot after an admin write so
// public reads see the change immediately. Failures only log; the cron will
// catch the snapshot up on its next tick.
func (in *RateCardHttp) refreshSnapshot(ctx context.Context) {
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	categories, err := in.Store.ListRateCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to refresh rate card snapshot", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	in.publishSnapshot(ctx, categories)
}

func (in *RateCardHttp) publishSnapshot(ctx context.Context, categories []model.RateCategory) {
	vars.SetRateCards(categories)

	payload, err := json.Marshal(categories)
	if err != nil {
		return
	}

	if err := in.Cache.Set(ctx, constant.RateCardSnapshotKey, payload, constant.RateCardSnapshotTTL).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to write rate card cache", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
	}
}
