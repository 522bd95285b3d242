package metric

import (
	"log/slog"
	"time"
	"worklens/src-cli/aggregate"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Init registers gauges describing the snapshot at snapshotPath and keeps
// them fresh on a ticker, so a rerun of the analyze command shows up without
// restarting the server. Closing shutdownCh stops the refresh loop and
// unregisters the gauges.
func Init(snapshotPath string, refreshInterval time.Duration, shutdownCh <-chan struct{}) {
	eventsTotal := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_snapshot_events_total",
		Help: "Total events in the latest snapshot",
	})
	workHours := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_snapshot_work_hours",
		Help: "Work-relevant hours in the latest snapshot",
	})
	stakeholders := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_snapshot_stakeholders",
		Help: "Distinct stakeholders in the latest snapshot",
	})
	categories := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_snapshot_categories",
		Help: "Distinct categories in the latest snapshot",
	})
	snapshotAge := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklens_snapshot_age_seconds",
		Help: "Seconds since the latest snapshot was generated",
	})
	gauges := []prometheus.Gauge{
		eventsTotal, workHours, stakeholders, categories, snapshotAge,
	}

	refresh := func() {
		snapshot, err := aggregate.LoadSnapshot(snapshotPath)
		if err != nil {
			slog.Warn("can't refresh snapshot metrics", "error", err)
			return
		}
		eventsTotal.Set(float64(snapshot.Summary.TotalEvents))
		workHours.Set(snapshot.Summary.WorkHours)
		stakeholders.Set(float64(len(snapshot.Stakeholders)))
		categories.Set(float64(len(snapshot.ByCategory)))
		if generated, err := time.Parse(time.RFC3339, snapshot.GeneratedAt); err == nil {
			snapshotAge.Set(time.Since(generated).Seconds())
		}
	}

	refresh()
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-shutdownCh:
				for _, gauge := range gauges {
					prometheus.Unregister(gauge)
				}
				slog.Debug("snapshot metrics unregistered")
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}
