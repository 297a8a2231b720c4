package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewHandler serves /metrics from gatherer and a plain /health probe.
func NewHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", healthCheckHandler)
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Serve runs the metrics and health endpoint on port until ctx is done.
func Serve(ctx context.Context, port int, gatherer prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHandler(gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("Launching metrics and health endpoint on :%d", port)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "metrics server stopped")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
