package httpapp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	e "github.com/IlianBuh/Wall-service/internal/lib/errors"
	"github.com/IlianBuh/Wall-service/internal/lib/logger/sl"
	httpserver "github.com/IlianBuh/Wall-service/internal/transport/http-server"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	log  *slog.Logger
	srvr *http.Server
}

func New(
	log *slog.Logger,
	addr string,
	wall httpserver.WallService,
	timeout time.Duration,
) *App {
	router := gin.New()
	router.Use(gin.Recovery(), httpserver.Logger(log))

	httpserver.Register(router, wall, timeout)

	return &App{
		log: log,
		srvr: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: timeout,
		},
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic("failed to run application: " + err.Error())
	}
}

func (a *App) Run() error {
	const op = "httpapp.Run"

	l, err := net.Listen("tcp", a.srvr.Addr)
	if err != nil {
		return e.Fail(op, err)
	}

	return a.Serve(l)
}

// Serve accepts connections on l until Stop is called
func (a *App) Serve(l net.Listener) error {
	const op = "httpapp.Serve"
	a.log.Info("starting http application", slog.String("op", op), slog.String("addr", l.Addr().String()))

	if err := a.srvr.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Fail(op, err)
	}

	return nil
}

func (a *App) Stop() {
	const op = "httpapp.Stop"
	log := a.log.With(slog.String("op", op))
	log.Info("stop http application")

	ctx, cncl := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cncl()

	if err := a.srvr.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown http application", sl.Err(err))
		return
	}

	log.Info("http application stopped")
}
