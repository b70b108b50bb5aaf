package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/errs"
	"design-folio/common/otel"
	"design-folio/model"
	"design-folio/outbound/store"
)

type AuthHttp struct {
	Store    *store.Store
	Cache    *redis.Client
	Validate *validator.Validate

	TimeNow func() time.Time

	secret   []byte
	tokenTTL time.Duration
}

func RegisterAuthHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	st *store.Store,
	cache *redis.Client,
	validate *validator.Validate,
) *AuthHttp {
	in := &AuthHttp{
		Store:    st,
		Cache:    cache,
		Validate: validate,
		TimeNow:  time.Now,

		secret:   []byte(cfg.GetString("auth.jwt_secret")),
		tokenTTL: cfg.GetDuration("auth.token_ttl"),
	}

	mux.HandleFunc("POST /api/admin/login", in.login)

	return in
}

func (in AuthHttp) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "AuthHttp.login")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "login receive request", traceIdAttr)

	lockKey := fmt.Sprintf(constant.LoginThrottleLock, req.Email)
	locked, err := in.Cache.Exists(ctx, lockKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to check login lock", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if locked > 0 {
		slog.DebugContext(ctx, "login throttled", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusTooManyRequests, Message: "Too many attempts, try again later"})
		return
	}

	admin, err := in.Store.FindAdminByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		slog.ErrorContext(ctx, "failed to find admin user", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if errors.Is(err, pgx.ErrNoRows) ||
		bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		if lockErr := in.Cache.SetNX(ctx, lockKey, true, constant.LoginThrottleLockTTL).Err(); lockErr != nil {
			slog.ErrorContext(ctx, "failed to set login lock", traceIdAttr, slog.Any(constant.LogFieldErr, lockErr))
		}

		slog.DebugContext(ctx, "login rejected", traceIdAttr)
		writeErrorResponse(w, errs.Unauthorized("Invalid email or password"))
		return
	}

	expiresAt := in.TimeNow().Add(in.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": admin.Email,
		"uid": admin.ID,
		"iat": in.TimeNow().Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString(in.secret)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign token", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	slog.InfoContext(ctx, "login success", traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	})
}
