package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samandr77/microservices/helpdesk/internal/api"
	"github.com/samandr77/microservices/helpdesk/internal/api/events"
	"github.com/samandr77/microservices/helpdesk/internal/clients/gemini"
	"github.com/samandr77/microservices/helpdesk/internal/clients/identity"
	"github.com/samandr77/microservices/helpdesk/internal/clients/mailer"
	"github.com/samandr77/microservices/helpdesk/internal/repository"
	"github.com/samandr77/microservices/helpdesk/internal/service"
	"github.com/samandr77/microservices/helpdesk/pkg/broker"
	"github.com/samandr77/microservices/helpdesk/pkg/config"
	"github.com/samandr77/microservices/helpdesk/pkg/job"
	"github.com/samandr77/microservices/helpdesk/pkg/logger"
	"github.com/samandr77/microservices/helpdesk/pkg/postgres"
	"github.com/samandr77/microservices/helpdesk/pkg/redis"
	"github.com/samandr77/microservices/helpdesk/pkg/security"
)

const (
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 40 * time.Second
	IdleTimeout       = 60 * time.Second
	ReadHeaderTimeout = 2 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr(ctx, "load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr(ctx, "connect to postgres", err)

	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr(ctx, "up migrations", err)

	repo := repository.New(pool)

	verifier := identity.NewVerifier(cfg.Identity)

	if cfg.Identity.PublicKeyPath != "" {
		publicKey, err := security.ParsePublicKeyFromFile(cfg.Identity.PublicKeyPath)
		panicOnErr(ctx, "load identity public key", err)

		verifier.WithPublicKey(publicKey)
	}

	s := service.New(
		verifier,
		repo,
		repo,
		repo,
		repo,
		gemini.NewClient(cfg.Gemini),
	)

	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		panicOnErr(ctx, "connect to redis", err)

		defer rdb.Close()

		s.WithRoleCache(repository.NewRoleCache(rdb), cfg.Redis.RoleCacheTTL)
	}

	if cfg.Mailer.Enabled() {
		s.WithMailer(mailer.New(cfg.Mailer))
	}

	// Kafka producer and consumers
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.TicketEventsTopic)
		defer producer.Close()

		s.WithEvents(producer)

		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerID, cfg.Kafka.IdentityTopic, cfg.Kafka.TicketEventsTopic)
		defer consumer.Close()

		eventHandler := events.NewEventHandler(s)

		consumer.
			Handle(cfg.Kafka.IdentityTopic, eventHandler.OnIdentityEvent).
			Handle(cfg.Kafka.TicketEventsTopic, eventHandler.OnTicketEvent).
			Consume(ctx)
	}

	jobs := job.NewService().
		RegisterJob("comments_readiness", cfg.ReadinessCheckInterval, s.CommentsReadiness)
	jobs.Start(ctx)

	router := api.NewRouter(api.NewHandler(s), api.NewMiddleware(s, cfg.CORSAllowedOrigins))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	var wg sync.WaitGroup

	startHTTPServer(&wg, l, server, cfg.HTTPPort)

	waitSignal(l, cancel, server)

	jobs.Stop()
	wg.Wait()
}

func startHTTPServer(wg *sync.WaitGroup, l *slog.Logger, server *http.Server, port int) {
	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("http server started", "port", port)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("listen and serve", "error", err, "port", port)
			panic(fmt.Sprintf("listen and serve: %s", err))
		}

		l.Debug("http server stopped")
	}()
}

func waitSignal(l *slog.Logger, cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		l.Error("server shutdown", "error", err)
	}
}

func panicOnErr(ctx context.Context, msg string, err error) {
	if err != nil {
		slog.ErrorContext(ctx, "Fatal error", "message", msg, "error", err)
		panic(fmt.Sprintf("%s: %s", msg, err))
	}
}
