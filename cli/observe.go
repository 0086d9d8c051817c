package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"due-date-calculator/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJobName = "due_date_calculator"

func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "addr", addr, "path", "/metrics")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	return server
}

// finish pushes metrics, optionally waits for scraping and stops the metrics server.
func (a *app) finish(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	if a.cfg.PushURL != "" {
		if err := push.New(a.cfg.PushURL, pushJobName).Gatherer(metrics.Registry).Push(); err != nil {
			a.logger.Error("pushing to Pushgateway", "url", a.cfg.PushURL, "error", err)
		} else {
			a.logger.Info("metrics pushed to Pushgateway", "url", a.cfg.PushURL)
		}
	}

	if a.server == nil {
		return
	}

	if a.cfg.Wait {
		a.logger.Info("process kept alive for metric scraping, press Ctrl+C to exit")
		waitCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		<-waitCtx.Done()
		stop()
	} else if a.cfg.PushURL == "" {
		// Small delay to allow a final scrape; batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("metrics server shutdown", "error", err)
	}
	a.server = nil
}
