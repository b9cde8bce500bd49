package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/IlianBuh/Wall-service/internal/app/grpcapp"
	"github.com/IlianBuh/Wall-service/internal/app/httpapp"
	"github.com/IlianBuh/Wall-service/internal/config"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	"github.com/IlianBuh/Wall-service/internal/service/wall"
	extraresources "github.com/IlianBuh/Wall-service/internal/service/wall/interfaces/extra-resources"
	"github.com/IlianBuh/Wall-service/internal/storage/postgres"
	"github.com/IlianBuh/Wall-service/internal/storage/sqlite"
	"github.com/IlianBuh/Wall-service/internal/transport/kafka"
)

type App struct {
	log           *slog.Logger
	Remote        *postgres.Storage
	Local         *sqlite.Storage
	Wall          *wall.Wall
	GRPCApp       *grpcapp.App
	HTTPApp       *httpapp.App
	EventProducer *kafka.Producer
}

func New(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
) *App {
	const op = "app.New"
	fail := func(err error) {
		panic(op + ": " + err.Error())
	}

	remote, err := postgres.New(log, cfg.Remote)
	if err != nil {
		fail(err)
	}

	local := sqlite.New(log, cfg.Local.Path)

	var (
		producer  *kafka.Producer
		publisher extraresources.EventPublisher
	)
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(
			ctx,
			log,
			cfg.Kafka.Addrs,
			cfg.Kafka.Topic,
			cfg.Kafka.Timeout,
			cfg.Kafka.Retries,
		)
		if err != nil {
			// events are optional, the wall works without them
			log.Error("failed to create event producer", slog.String("op", op), sl.Err(err))
		} else {
			publisher = producer
		}
	}

	wallService := wall.New(
		log,
		remote,
		local,
		publisher,
		cfg.Wall.RefreshInterval,
		cfg.Wall.Timeout,
	)

	return &App{
		log:           log,
		Remote:        remote,
		Local:         local,
		Wall:          wallService,
		GRPCApp:       grpcapp.New(log, cfg.GRPC.Port, wallService, cfg.GRPC.Timeout),
		HTTPApp:       httpapp.New(log, cfg.HTTP.Addr(), wallService, cfg.HTTP.Timeout),
		EventProducer: producer,
	}
}

// Start loads the wall and starts servers. Servers accept requests
// only after backend of the session is chosen
func (a *App) Start(ctx context.Context) {
	const op = "app.Start"
	log := a.log.With(slog.String("op", op))
	log.Info("starting application")

	a.Wall.Start(ctx)

	go a.GRPCApp.MustRun()
	go a.HTTPApp.MustRun()

	log.Info("application started", slog.String("state", a.Wall.State().String()))
}

func (a *App) Stop() {
	const op = "app.Stop"
	log := a.log.With(slog.String("op", op))
	log.Info("stopping application")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		a.GRPCApp.Stop()
	}()
	go func() {
		defer wg.Done()
		a.HTTPApp.Stop()
	}()
	wg.Wait()

	a.Wall.Stop()

	wg.Add(3)
	go func() {
		defer wg.Done()
		if a.EventProducer != nil {
			a.EventProducer.Stop()
		}
	}()
	go func() {
		defer wg.Done()
		a.Remote.Stop()
	}()
	go func() {
		defer wg.Done()
		a.Local.Stop()
	}()
	wg.Wait()

	log.Info("application is stopped")
}
