package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/dkeye/VideoCall/internal/adapters/events"
	router "github.com/dkeye/VideoCall/internal/adapters/http"
	"github.com/dkeye/VideoCall/internal/adapters/rtc"
	"github.com/dkeye/VideoCall/internal/app"
	"github.com/dkeye/VideoCall/internal/app/orch"
	"github.com/dkeye/VideoCall/internal/config"
	"github.com/dkeye/VideoCall/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	var (
		prompter core.PermissionPrompter
		prompts  *router.UIPrompter
	)
	if cfg.Permissions.AutoGrant {
		prompter = router.AutoPrompter{Grant: true}
	} else {
		prompts = router.NewUIPrompter(cfg.Permissions.Timeout)
		prompter = prompts
	}
	gate := app.NewPermissionGate(prompter)
	hub := events.NewHub(cfg.ReadLimit, cfg.PingPeriod)
	engine := rtc.NewEngine(rtc.Options{
		SignalURL:  cfg.SignalURL,
		ICEServers: cfg.ICEServers,
		Capture: rtc.CaptureOptions{
			VideoRTPAddr: cfg.Capture.VideoRTPAddr,
			AudioRTPAddr: cfg.Capture.AudioRTPAddr,
		},
	})

	sessions := orch.NewManager(ctx, engine, gate, orch.Options{
		AppID:       cfg.AppID,
		Token:       cfg.Token,
		JoinInfo:    cfg.JoinInfo,
		Video:       cfg.VideoProfile(),
		EventBuffer: cfg.EventBuffer,
	}, hub)

	r := router.SetupRouter(cfg, router.Deps{
		Sessions: sessions,
		Gate:     gate,
		Prompts:  prompts,
		Events:   hub,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Bool("auto_grant", cfg.Permissions.AutoGrant).Msg("VideoCall server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		sessions.Shutdown()
		hub.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
