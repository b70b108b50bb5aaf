package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/errs"
	"design-folio/common/otel"
	"design-folio/model"
	"design-folio/outbound/store"
	"design-folio/ratecard"
)

type JourneyHttp struct {
	Store *store.Store
}

func RegisterJourneyHttp(
	mux *http.ServeMux,
	st *store.Store,
	adminAuth func(http.Handler) http.Handler,
) *JourneyHttp {
	in := &JourneyHttp{Store: st}

	mux.HandleFunc("GET /api/journey", in.list)

	mux.Handle("POST /api/admin/journey", adminAuth(http.HandlerFunc(in.create)))
	mux.Handle("PATCH /api/admin/journey/{id}", adminAuth(http.HandlerFunc(in.update)))
	mux.Handle("DELETE /api/admin/journey/{id}", adminAuth(http.HandlerFunc(in.delete)))

	return in
}

func (in *JourneyHttp) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "JourneyHttp.list")
	defer span.End()

	entries, err := in.Store.ListJourneyEntries(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list journey entries", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListJourneyResponse{Entries: entries})
}

func (in *JourneyHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.JourneyEntryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "JourneyHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create journey entry receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	entry, err := normalizeJourneyCreate(req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	exists, err := in.Store.JourneyEntryExists(ctx, entry.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check journey entry existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if exists {
		writeErrorResponse(w, errs.Conflict("Journey entry id already in use"))
		return
	}

	if err := in.Store.InsertJourneyEntry(ctx, entry); err != nil {
		if store.IsUniqueViolation(err) {
			writeErrorResponse(w, errs.Conflict("Journey entry id already in use"))
			return
		}
		slog.ErrorContext(ctx, "failed to insert journey entry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create journey entry success", traceIdAttr, slog.Any(constant.LogFieldResponse, entry.ID))

	writeJSONResponse(w, http.StatusCreated, entry)
}

func (in *JourneyHttp) update(w http.ResponseWriter, r *http.Request) {
	var req model.JourneyEntryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "JourneyHttp.update")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	existing, err := in.Store.GetJourneyEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, errs.NotFound("Journey entry not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to get journey entry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	updated, idChanged, err := normalizeJourneyUpdate(existing, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	if idChanged {
		exists, err := in.Store.JourneyEntryExists(ctx, updated.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check journey entry existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		if exists {
			writeErrorResponse(w, errs.Conflict("Journey entry id already in use"))
			return
		}
	}

	affected, err := in.Store.UpdateJourneyEntry(ctx, id, updated)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update journey entry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Journey entry not found"))
		return
	}

	slog.InfoContext(ctx, "update journey entry success", traceIdAttr, slog.Any(constant.LogFieldResponse, updated.ID))

	writeJSONResponse(w, http.StatusOK, updated)
}

func (in *JourneyHttp) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "JourneyHttp.delete")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	affected, err := in.Store.DeleteJourneyEntry(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete journey entry", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Journey entry not found"))
		return
	}

	slog.InfoContext(ctx, "delete journey entry success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.AckResponse{Ok: true})
}

func normalizeJourneyCreate(in model.JourneyEntryInput) (model.JourneyEntry, error) {
	id := ""
	if in.ID != nil {
		id = ratecard.NormalizeID(*in.ID)
	}
	if id == "" {
		return model.JourneyEntry{}, errs.ValidationField("id", "required")
	}

	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return model.JourneyEntry{}, errs.ValidationField("title", "required")
	}

	entry := model.JourneyEntry{
		ID:    id,
		Title: title,
		Body:  ratecard.NormalizeParagraphs(in.Body),
	}

	if in.Subtitle != nil {
		entry.Subtitle = strings.TrimSpace(*in.Subtitle)
	}
	if in.Period != nil {
		entry.Period = strings.TrimSpace(*in.Period)
	}
	if in.SortOrder != nil {
		entry.SortOrder = *in.SortOrder
	}

	return entry, nil
}

func normalizeJourneyUpdate(existing model.JourneyEntry, in model.JourneyEntryInput) (model.JourneyEntry, bool, error) {
	out := existing
	idChanged := false

	if in.ID != nil {
		id := ratecard.NormalizeID(*in.ID)
		if id == "" {
			return model.JourneyEntry{}, false, errs.ValidationField("id", "required")
		}
		idChanged = id != existing.ID
		out.ID = id
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return model.JourneyEntry{}, false, errs.ValidationField("title", "required")
		}
		out.Title = title
	}

	if in.Subtitle != nil {
		out.Subtitle = strings.TrimSpace(*in.Subtitle)
	}
	if in.Period != nil {
		out.Period = strings.TrimSpace(*in.Period)
	}
	if in.Body != nil {
		out.Body = ratecard.NormalizeParagraphs(in.Body)
	}
	if in.SortOrder != nil {
		out.SortOrder = *in.SortOrder
	}

	return out, idChanged, nil
}
