package cron

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"design-folio/common"
	"design-folio/common/constant"
	"design-folio/common/vars"
	"design-folio/outbound/store"
)

// RateCardCron keeps the in-memory rate-card snapshot (and its redis copy)
// in step with the document store.
type RateCardCron struct {
	Cfg   *viper.Viper
	Cache *redis.Client
	Store *store.Store
}

// InitSnapshot loads the snapshot once at boot so the public listing never
// starts cold.
func (in RateCardCron) InitSnapshot(ctx context.Context) error {
	return in.refresh(ctx)
}

func (in RateCardCron) Start(ctx context.Context) {
	refreshTicker := time.NewTicker(in.Cfg.GetDuration("cron.ratecard.refresh.interval"))
	defer refreshTicker.Stop()

	slog.Info("rate card cron started")

	for {
		select {
		case <-refreshTicker.C:
			if err := in.refresh(ctx); err != nil {
				slog.ErrorContext(ctx, "rate card refresh failed", slog.Any(constant.LogFieldErr, err))
			}
		case <-ctx.Done():
			slog.Info("rate card cron stopped")
			return
		}
	}
}

func (in RateCardCron) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, in.Cfg.GetDuration("cron.ratecard.refresh.timeout"))
	defer cancel()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	slog.DebugContext(ctx, "refreshing rate card snapshot", traceIdAttr)

	categories, err := in.Store.ListRateCategories(ctx)
	if err != nil {
		return err
	}

	vars.SetRateCards(categories)

	payload, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	err = in.Cache.Set(ctx, constant.RateCardSnapshotKey, payload, constant.RateCardSnapshotTTL).Err()
	if err != nil {
		slog.ErrorContext(ctx, "failed to write rate card cache", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	slog.DebugContext(ctx, "rate card snapshot refreshed", traceIdAttr, slog.Int("categories", len(categories)))

	return nil
}
