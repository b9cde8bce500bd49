package grpcapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/IlianBuh/Wall-service/internal/lib/errors"
	grpcserver "github.com/IlianBuh/Wall-service/internal/transport/grpc-server"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	log      *slog.Logger
	port     int
	grpcsrvr *grpc.Server
}

func New(
	log *slog.Logger,
	port int,
	wall grpcserver.WallService,
	timeout time.Duration,
) *App {
	recoveryOpt := []recovery.Option{
		recovery.WithRecoveryHandler(
			func(p any) error {
				log.Error("recover panic", slog.Any("panic", p))

				return status.Errorf(codes.Internal, "internal error")
			},
		),
	}

	loggingOpt := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}

	grpcsrvr := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt...),
			logging.UnaryServerInterceptor(interceptorLogger(log), loggingOpt...),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt...),
			logging.StreamServerInterceptor(interceptorLogger(log), loggingOpt...),
		),
	)

	grpcserver.Register(grpcsrvr, wall, timeout)

	return &App{
		log:      log,
		port:     port,
		grpcsrvr: grpcsrvr,
	}
}

// interceptorLogger adapts slog logger to interceptors' logger
func interceptorLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic("failed to run application: " + err.Error())
	}
}

func (a *App) Run() error {
	const op = "grpcapp.Run"

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", a.port))
	if err != nil {
		return errors.Fail(op, err)
	}

	return a.Serve(l)
}

// Serve accepts connections on l until Stop is called
func (a *App) Serve(l net.Listener) error {
	const op = "grpcapp.Serve"
	log := a.log.With(slog.String("op", op))
	log.Info("starting grpc application", slog.String("addr", l.Addr().String()))

	// ErrServerStopped means Stop won the race with Serve
	if err := a.grpcsrvr.Serve(l); err != nil && err != grpc.ErrServerStopped {
		return errors.Fail(op, err)
	}

	return nil
}

func (a *App) Stop() {
	const op = "grpcapp.Stop"

	a.log.Info("stop grpc application", slog.String("op", op))

	// feed watchers never finish on their own
	done := make(chan struct{})
	go func() {
		a.grpcsrvr.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		a.log.Warn("graceful stop timed out", slog.String("op", op))
		a.grpcsrvr.Stop()
	}

	a.log.Info("grpc application stopped", slog.String("op", op))
}
