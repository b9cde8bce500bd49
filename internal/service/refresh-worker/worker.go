package refreshworker

import (
	"log/slog"
	"sync"
	"time"
)

// Worker runs task on every tick of interval until stopped
type Worker struct {
	log      *slog.Logger
	interval time.Duration
	task     func()

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func New(
	log *slog.Logger,
	interval time.Duration,
	task func(),
) *Worker {
	return &Worker{
		log:      log,
		interval: interval,
		task:     task,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start starts ticking in background. Repeated calls are ignored.
// Non-positive interval disables the worker
func (w *Worker) Start() {
	const op = "refreshworker.Start"

	w.startOnce.Do(func() {
		log := w.log.With(slog.String("op", op))

		if w.interval <= 0 {
			log.Warn("interval is not positive, worker is disabled")
			close(w.done)
			return
		}

		ticker := time.NewTicker(w.interval)
		log.Info("worker started", slog.Duration("interval", w.interval))

		go func() {
			defer close(w.done)
			defer ticker.Stop()

			for {
				select {
				case <-w.stop:
					log.Info("stop signal is received")
					return
				case <-ticker.C:
				}

				w.task()
			}
		}()
	})
}

// Stop stops worker and waits for running task. Safe to call many times
// and before Start
func (w *Worker) Stop() {
	const op = "refreshworker.Stop"

	w.stopOnce.Do(func() {
		w.log.Info("starting to stop worker", slog.String("op", op))

		close(w.stop)
		w.startOnce.Do(func() { close(w.done) })
		<-w.done
	})
}
