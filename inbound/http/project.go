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

type ProjectHttp struct {
	Store *store.Store
}

func RegisterProjectHttp(
	mux *http.ServeMux,
	st *store.Store,
	adminAuth func(http.Handler) http.Handler,
) *ProjectHttp {
	in := &ProjectHttp{Store: st}

	mux.HandleFunc("GET /api/projects", in.list)
	mux.HandleFunc("GET /api/projects/{id}", in.get)

	mux.Handle("GET /api/admin/projects", adminAuth(http.HandlerFunc(in.adminList)))
	mux.Handle("POST /api/admin/projects", adminAuth(http.HandlerFunc(in.create)))
	mux.Handle("PATCH /api/admin/projects/{id}", adminAuth(http.HandlerFunc(in.update)))
	mux.Handle("DELETE /api/admin/projects/{id}", adminAuth(http.HandlerFunc(in.delete)))

	return in
}

func (in *ProjectHttp) list(w http.ResponseWriter, r *http.Request) {
	in.listProjects(w, r, true)
}

func (in *ProjectHttp) adminList(w http.ResponseWriter, r *http.Request) {
	in.listProjects(w, r, false)
}

func (in *ProjectHttp) listProjects(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	ctx, span := otel.Tracer.Start(r.Context(), "ProjectHttp.list")
	defer span.End()

	projects, err := in.Store.ListProjects(ctx, publishedOnly)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list projects", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ListProjectsResponse{Projects: projects})
}

func (in *ProjectHttp) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ProjectHttp.get")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))

	project, err := in.Store.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, errs.NotFound("Project not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to get project", common.ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if !project.Published {
		writeErrorResponse(w, errs.NotFound("Project not found"))
		return
	}

	writeJSONResponse(w, http.StatusOK, project)
}

func (in *ProjectHttp) create(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProjectHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create project receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	project, err := normalizeProjectCreate(req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	exists, err := in.Store.ProjectExists(ctx, project.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check project existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if exists {
		writeErrorResponse(w, errs.Conflict("Project id already in use"))
		return
	}

	if err := in.Store.InsertProject(ctx, project); err != nil {
		if store.IsUniqueViolation(err) {
			writeErrorResponse(w, errs.Conflict("Project id already in use"))
			return
		}
		slog.ErrorContext(ctx, "failed to insert project", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "create project success", traceIdAttr, slog.Any(constant.LogFieldResponse, project.ID))

	writeJSONResponse(w, http.StatusCreated, project)
}

func (in *ProjectHttp) update(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "ProjectHttp.update")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "update project receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	existing, err := in.Store.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeErrorResponse(w, errs.NotFound("Project not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to get project", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	updated, idChanged, err := normalizeProjectUpdate(existing, req)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	if idChanged {
		exists, err := in.Store.ProjectExists(ctx, updated.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check project existence", traceIdAttr, slog.Any(constant.LogFieldErr, err))
			writeErrorResponse(w, err)
			return
		}

		if exists {
			writeErrorResponse(w, errs.Conflict("Project id already in use"))
			return
		}
	}

	affected, err := in.Store.UpdateProject(ctx, id, updated)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update project", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Project not found"))
		return
	}

	slog.InfoContext(ctx, "update project success", traceIdAttr, slog.Any(constant.LogFieldResponse, updated.ID))

	writeJSONResponse(w, http.StatusOK, updated)
}

func (in *ProjectHttp) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "ProjectHttp.delete")
	defer span.End()

	id := ratecard.NormalizeID(r.PathValue("id"))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	affected, err := in.Store.DeleteProject(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete project", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if affected == 0 {
		writeErrorResponse(w, errs.NotFound("Project not found"))
		return
	}

	slog.InfoContext(ctx, "delete project success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.AckResponse{Ok: true})
}

func normalizeProjectCreate(in model.ProjectInput) (model.Project, error) {
	id := ""
	if in.ID != nil {
		id = ratecard.NormalizeID(*in.ID)
	}
	if id == "" {
		return model.Project{}, errs.ValidationField("id", "required")
	}

	title := ""
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return model.Project{}, errs.ValidationField("title", "required")
	}

	project := model.Project{
		ID:    id,
		Title: title,
		Tags:  ratecard.NormalizeStringList(in.Tags),
	}

	if in.Summary != nil {
		project.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.Description != nil {
		project.Description = strings.TrimSpace(*in.Description)
	}
	if in.CoverURL != nil {
		project.CoverURL = strings.TrimSpace(*in.CoverURL)
	}
	if in.ProjectURL != nil {
		project.ProjectURL = strings.TrimSpace(*in.ProjectURL)
	}
	if in.Year != nil {
		project.Year = *in.Year
	}
	if in.Published != nil {
		project.Published = *in.Published
	}
	if in.SortOrder != nil {
		project.SortOrder = *in.SortOrder
	}

	return project, nil
}

func normalizeProjectUpdate(existing model.Project, in model.ProjectInput) (model.Project, bool, error) {
	out := existing
	idChanged := false

	if in.ID != nil {
		id := ratecard.NormalizeID(*in.ID)
		if id == "" {
			return model.Project{}, false, errs.ValidationField("id", "required")
		}
		idChanged = id != existing.ID
		out.ID = id
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return model.Project{}, false, errs.ValidationField("title", "required")
		}
		out.Title = title
	}

	if in.Summary != nil {
		out.Summary = strings.TrimSpace(*in.Summary)
	}
	if in.Description != nil {
		out.Description = strings.TrimSpace(*in.Description)
	}
	if in.Tags != nil {
		out.Tags = ratecard.NormalizeStringList(in.Tags)
	}
	if in.CoverURL != nil {
		out.CoverURL = strings.TrimSpace(*in.CoverURL)
	}
	if in.ProjectURL != nil {
		out.ProjectURL = strings.TrimSpace(*in.ProjectURL)
	}
	if in.Year != nil {
		out.Year = *in.Year
	}
	if in.Published != nil {
		out.Published = *in.Published
	}
	if in.SortOrder != nil {
		out.SortOrder = *in.SortOrder
	}

	return out, idChanged, nil
}
