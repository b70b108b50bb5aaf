package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-playground/validator/v10"

	jetstreamCommon "design-folio/common/jetstream"
	"design-folio/common/otel"
	inboundCron "design-folio/inbound/cron"
	inboundHttp "design-folio/inbound/http"
	"design-folio/outbound/store"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	shutdownTracer := otel.InitTracerProvider(ctx, "design-folio", cfg.GetString("otel.endpoint"))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("unable to shutdown tracer", slog.Any("error", err))
		}
	}()

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	jetstreamCommon.CreateQueueStream(ctx, js)

	mediaOutbound := newMedia(ctx, cfg)

	st := store.New(db)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(20 * time.Second)
	adminAuth := inboundHttp.AdminAuthMiddleware([]byte(cfg.GetString("auth.jwt_secret")))

	inboundHttp.RegisterAuthHttp(mux, cfg, st, cacheClient, validate)
	inboundHttp.RegisterRateCardHttp(mux, st, cacheClient, adminAuth)
	inboundHttp.RegisterProjectHttp(mux, st, adminAuth)
	inboundHttp.RegisterJourneyHttp(mux, st, adminAuth)
	inboundHttp.RegisterEnquiryHttp(mux, cfg, st, cacheClient, js, validate, adminAuth)
	inboundHttp.RegisterUploadHttp(mux, cfg, mediaOutbound, adminAuth)

	rateCardCron := &inboundCron.RateCardCron{
		Cfg:   cfg,
		Cache: cacheClient,
		Store: st,
	}

	err := rateCardCron.InitSnapshot(ctx)
	if err != nil {
		log.Fatalln("unable to init rate card snapshot", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started")

	go func() {
		rateCardCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
