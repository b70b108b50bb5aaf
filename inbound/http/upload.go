package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/errs"
	"design-folio/common/otel"
	"design-folio/model"
	"design-folio/outbound/media"
)

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

type UploadHttp struct {
	Media *media.MediaOutbound

	maxUploadBytes int64
	keyPrefix      string
}

func RegisterUploadHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	out *media.MediaOutbound,
	adminAuth func(http.Handler) http.Handler,
) *UploadHttp {
	in := &UploadHttp{
		Media: out,

		maxUploadBytes: cfg.GetInt64("media.max_upload_bytes"),
		keyPrefix:      strings.Trim(cfg.GetString("media.key_prefix"), "/"),
	}

	mux.Handle("POST /api/admin/uploads", adminAuth(http.HandlerFunc(in.create)))

	return in
}

func (in UploadHttp) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "UploadHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, in.maxUploadBytes)
	if err := r.ParseMultipartForm(in.maxUploadBytes); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusRequestEntityTooLarge, Message: "Upload too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, errs.ValidationField("file", "required"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		writeErrorResponse(w, errs.ValidationField("file", "unsupported image type"))
		return
	}

	key := fmt.Sprintf("%s/%s%s", in.keyPrefix, ulid.Make().String(), ext)

	url, err := in.Media.Upload(ctx, key, contentType, file)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload image", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "upload image success", traceIdAttr, slog.Any(constant.LogFieldResponse, key))

	writeJSONResponse(w, http.StatusCreated, model.UploadResponse{URL: url, Key: key})
}
