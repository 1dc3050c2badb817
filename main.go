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

	"github.com/gin-gonic/gin"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mediaconnect/doctor-invites/pkg/api"
	"github.com/mediaconnect/doctor-invites/pkg/clients/inviteapi"
	"github.com/mediaconnect/doctor-invites/pkg/config"
	"github.com/mediaconnect/doctor-invites/pkg/events"
	"github.com/mediaconnect/doctor-invites/pkg/i18n"
	"github.com/mediaconnect/doctor-invites/pkg/modal"
	"github.com/mediaconnect/doctor-invites/pkg/services"
	"github.com/mediaconnect/doctor-invites/pkg/validation"
)

func main() {
	/* Logger */
	var logger log.Logger
	{
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	if err := run(logger); err != nil {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "server stopped")
}

func run(logger log.Logger) error {
	if err := godotenv.Load(); err != nil {
		level.Debug(logger).Log("msg", "no .env file loaded", "err", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = level.NewFilter(logger, levelOption(cfg.LogLevel))

	/* Metrics */
	requests := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "doctor_invites",
		Name:      "invitations_total",
		Help:      "Invitations sent, by outcome.",
	}, []string{"outcome"})
	duration := kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "doctor_invites",
		Name:      "invitation_duration_seconds",
		Help:      "Time spent waiting for the invitation endpoint.",
		Buckets:   stdprometheus.DefBuckets,
	}, []string{"outcome"})

	/* Events */
	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return fmt.Errorf("connect event publisher: %w", err)
		}
		publisher = p
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			level.Warn(logger).Log("msg", "close event publisher", "err", err)
		}
	}()

	// Initialize API clients
	inviteClient := inviteapi.NewClient(cfg.InviteAPIURL, cfg.InviteAPIPath, cfg.InviteAPIToken, cfg.InviteAPITimeout)

	// Initialize services
	invitationService := services.NewInvitationService(
		inviteClient,
		publisher,
		logger,
		services.LoggingMiddleware(log.With(logger, "component", "invitations")),
		services.InstrumentingMiddleware(requests, duration),
	)

	policy := modal.NotifyOnTransportError
	if cfg.TransportErrorPolicy == config.TransportErrorIgnore {
		policy = modal.IgnoreTransportError
	}
	store := modal.NewStore(modal.Deps{
		Sender:        invitationService,
		Validator:     validation.New(),
		Logger:        log.With(logger, "component", "modal"),
		Policy:        policy,
		FallbackTitle: i18n.FallbackTitle,
	}, cfg.SessionTTL, modal.WithMaxSessions(cfg.MaxSessions))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go store.RunSweeper(ctx, time.Minute)

	gin.SetMode(cfg.GinMode)

	handlers := api.NewHandlers(store, logger, cfg.SecureCookies, api.ModalOptions{})
	router, err := api.NewRouter(handlers, log.With(logger, "component", "http"), cfg.CORSAllowedOrigins, promhttp.Handler())
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.InviteAPITimeout+5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "shutdown", "err", err)
		}
	}()

	level.Info(logger).Log("msg", "server starting", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
