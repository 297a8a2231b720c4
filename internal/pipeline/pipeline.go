package pipeline

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"whale-alert-bot/internal/filter"
	"whale-alert-bot/internal/metrics"
	"whale-alert-bot/internal/types"
	"whale-alert-bot/internal/whale"
	"whale-alert-bot/lib/helpers"
)

// Fetcher returns the current transactions of one source.
type Fetcher interface {
	Fetch(ctx context.Context, source types.Source) ([]types.Transaction, error)
}

// Notifier delivers one alert.
type Notifier interface {
	Notify(ctx context.Context, tx types.Transaction) error
}

// Pipeline polls every source in order, filters the records and notifies
// each one that passes.
type Pipeline struct {
	sources    []types.Source
	fetcher    Fetcher
	notifier   Notifier
	thresholds filter.Thresholds
	metrics    *metrics.BotMetrics
}

func New(sources []types.Source, fetcher Fetcher, notifier Notifier, thresholds filter.Thresholds, m *metrics.BotMetrics) *Pipeline {
	return &Pipeline{
		sources:    sources,
		fetcher:    fetcher,
		notifier:   notifier,
		thresholds: thresholds,
		metrics:    m,
	}
}

// RunCycle visits every source once. A failed request or an unexpected status
// only skips that source; a malformed body or a failed notification aborts
// the cycle and is returned.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	var (
		received int
		sent     int
		volume   float64
	)

	for _, source := range p.sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.metrics.SourceRequests.WithLabelValues(source.Name).Inc()
		txs, err := p.fetcher.Fetch(ctx, source)
		if err != nil {
			if errors.Is(err, whale.ErrMalformedBody) || ctx.Err() != nil {
				return errors.Wrapf(err, "cycle aborted at %s", source.Name)
			}
			p.metrics.SourceFailures.WithLabelValues(source.Name).Inc()
			log.WithField("source", source.Name).Errorf("❌ Failed to fetch data from %s: %v", strings.ToUpper(source.Name), err)
			continue
		}

		received += len(txs)
		p.metrics.TransactionsReceived.WithLabelValues(source.Name).Add(float64(len(txs)))

		for _, tx := range filter.Apply(txs, p.thresholds) {
			if err := p.notifier.Notify(ctx, tx); err != nil {
				return errors.Wrapf(err, "cycle aborted at %s", source.Name)
			}
			p.metrics.AlertsSent.WithLabelValues(source.Name).Inc()
			sent++
			volume += tx.AmountUSD
		}
	}

	log.WithFields(log.Fields{
		"sources":      len(p.sources),
		"transactions": received,
		"alerts":       sent,
		"volume":       helpers.FormatUSD(volume),
	}).Info("Cycle completed")
	return nil
}
