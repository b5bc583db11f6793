package worker

import (
	"context"
	"time"

	"chalet-backend/services"

	"github.com/sirupsen/logrus"
)

// HoldExpiryWorker periodically deletes expired holds. The sweep is
// advisory housekeeping: the availability resolver already ignores
// expired holds, so nothing breaks if a tick is missed or delayed.
type HoldExpiryWorker struct {
	holdService *services.HoldService
	interval    time.Duration
}

func NewHoldExpiryWorker(holdService *services.HoldService, interval time.Duration) *HoldExpiryWorker {
	return &HoldExpiryWorker{
		holdService: holdService,
		interval:    interval,
	}
}

func (w *HoldExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Hold expiry worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Hold expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *HoldExpiryWorker) sweep() {
	removed, err := w.holdService.ExpireHolds(time.Now().UTC())
	if err != nil {
		logrus.Errorf("Failed to expire holds: %v", err)
		return
	}
	if removed > 0 {
		logrus.Infof("Removed %d expired holds", removed)
	}
}
