package metrics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

// Store is the persistence used to carry counters across restarts.
type Store interface {
	SaveMetric(metricName string, value float64) error
	SaveMetricWithLabels(metricName, labelKey, labelValue string, value float64) error
	GetMetric(metricName string) (float64, error)
	GetMetricsWithLabels(metricName string) (map[string]map[string]float64, error)
}

// LoadFromStore adds previously saved values onto the counters. Call it once,
// before any counter is incremented.
func (m *BotMetrics) LoadFromStore(store Store) error {
	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	for name, counter := range m.counters() {
		value, err := store.GetMetric(name)
		if err != nil {
			return err
		}
		counter.Add(value)
	}

	for name, vec := range m.vectors() {
		labeled, err := store.GetMetricsWithLabels(name)
		if err != nil {
			return err
		}
		for source, value := range labeled[sourceLabel] {
			vec.WithLabelValues(source).Add(value)
		}
	}

	log.Info("Metrics loaded from database.")
	return nil
}

// SaveToStore writes the current counter values.
func (m *BotMetrics) SaveToStore(store Store) error {
	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	for name, counter := range m.counters() {
		if err := store.SaveMetric(name, GetMetricValue(counter)); err != nil {
			return err
		}
	}

	for name, vec := range m.vectors() {
		metricChan := make(chan prometheus.Metric)
		go func() {
			vec.Collect(metricChan)
			close(metricChan)
		}()

		var saveErr error
		for metric := range metricChan {
			if saveErr != nil {
				continue
			}
			metricProto := &dto.Metric{}
			if err := metric.Write(metricProto); err != nil {
				saveErr = errors.Wrapf(err, "failed to read %s metric", name)
				continue
			}
			source := labelValue(metricProto, sourceLabel)
			saveErr = store.SaveMetricWithLabels(name, sourceLabel, source, metricProto.GetCounter().GetValue())
		}
		if saveErr != nil {
			return saveErr
		}
	}

	log.Info("Metrics saved to database.")
	return nil
}

// GetMetricValue reads the current value of a single counter or gauge.
func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Errorf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}

func labelValue(m *dto.Metric, name string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

// RunSnapshots saves the counters every interval until ctx is done. It
// returns only after any in-flight save has finished.
func (m *BotMetrics) RunSnapshots(ctx context.Context, store Store, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.SaveToStore(store); err != nil {
				log.Errorf("Failed to save metrics: %v", err)
			}
		}
	}
}
