package approval

import (
	"context"
	"time"

	"timeclass-backend/internal/mailer"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"go.uber.org/zap"
)

// Worker is the background job that approves PENDING work-hours whose
// auto-approval window has elapsed. Records with an open claim are
// never touched.
type Worker struct {
	workHours repository.WorkHourRepository
	settings  repository.SettingRepository
	mail      *mailer.Mailer
	log       *zap.Logger
	interval  time.Duration
	stopChan  chan struct{}
}

func NewWorker(
	workHours repository.WorkHourRepository,
	settings repository.SettingRepository,
	mail *mailer.Mailer,
	log *zap.Logger,
	interval time.Duration,
) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		workHours: workHours,
		settings:  settings,
		mail:      mail,
		log:       log,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting auto-approval worker", zap.Duration("interval", w.interval))
	go w.run(ctx)
}

func (w *Worker) Stop() {
	w.log.Info("stopping auto-approval worker")
	close(w.stopChan)
}

func (w *Worker) run(ctx context.Context) {
	// First pass right away, then on the ticker
	w.approveExpired()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.approveExpired()
		case <-w.stopChan:
			w.log.Info("auto-approval worker stopped")
			return
		case <-ctx.Done():
			w.log.Info("auto-approval worker cancelled")
			return
		}
	}
}

func (w *Worker) approveExpired() {
	setting, err := w.settings.Get()
	if err != nil {
		w.log.Error("failed to load approval settings", zap.Error(err))
		return
	}

	window, ok := Window(setting.AutoApproveAmount, setting.AutoApproveUnit)
	if !ok {
		w.log.Warn("auto-approval disabled by settings",
			zap.Int("amount", setting.AutoApproveAmount),
			zap.String("unit", setting.AutoApproveUnit))
		return
	}

	cutoff := time.Now().Add(-window)
	expired, err := w.workHours.GetExpiredPending(cutoff)
	if err != nil {
		w.log.Error("failed to load expired pending work-hours", zap.Error(err))
		return
	}

	for i := range expired {
		wh := expired[i]
		if !model.CanTransition(wh.Status, model.StatusAccepted, false) {
			continue
		}
		wh.Status = model.StatusAccepted
		if err := w.workHours.Update(&wh); err != nil {
			w.log.Error("failed to auto-approve work-hour",
				zap.Uint("id", wh.ID), zap.Error(err))
			continue
		}
		w.log.Info("work-hour auto-approved",
			zap.Uint("id", wh.ID), zap.Uint("teacher_id", wh.TeacherID))
		go w.mail.AutoApproved(&wh, &wh.Teacher)
	}
}
