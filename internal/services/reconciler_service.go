package services

import (
	"errors"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"sync"
)

var ErrReconcileRunning = errors.New("reconcile is in progress")

// Reconciler repairs drifted box item counts. Every count change already
// happens inside a transaction, this catches rows edited outside the API.
type Reconciler struct {
	boxService    BoxService
	configuration *config.Configuration
	logService    LogService
	running       bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewReconcilerService(
	boxService BoxService,
	logService LogService,
	configuration *config.Configuration,
) *Reconciler {
	return &Reconciler{
		boxService:    boxService,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
	}
}

// ForceReconcile runs one pass synchronously and returns the number of boxes
// whose count was corrected.
func (r *Reconciler) ForceReconcile() (int, error) {
	if !r.tryStart() {
		return 0, ErrReconcileRunning
	}
	defer r.finish()
	return r.reconcile(true)
}

func (r *Reconciler) StartReconcileCycle() {
	if !r.configuration.Server.ReconcileConfig.Enabled {
		r.logService.Log.Debug("reconcile job disabled")
		return
	}
	schedule := r.configuration.Server.ReconcileConfig.Schedule
	r.logService.Log.WithField("cron", schedule).Debug("starting reconcile job")

	_, err := r.cron.AddFunc(schedule, func() {
		if !r.tryStart() {
			return
		}
		defer r.finish()
		_, _ = r.reconcile(false)
	})
	if err != nil {
		r.logService.Log.WithFields(logrus.Fields{
			"job":   "reconcile",
			"error": err.Error(),
		}).Error("Failed to start reconcile job")
		return
	}
	r.cron.Start()
}

func (r *Reconciler) StopReconcile() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logService.Log.WithFields(logrus.Fields{
		"job":    "reconcile",
		"status": "stopped",
	}).Info("Reconcile job stopped")
}

func (r *Reconciler) IsRunning() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.running
}

func (r *Reconciler) tryStart() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Reconciler) finish() {
	r.mutex.Lock()
	r.running = false
	r.mutex.Unlock()
}

func (r *Reconciler) reconcile(forced bool) (int, error) {
	fields := logrus.Fields{"job": "reconcile", "forced": forced}
	corrected, err := r.boxService.ReconcileItemCounts()
	if err != nil {
		r.logService.Log.WithFields(fields).WithField("error", err.Error()).Error("Failed to reconcile item counts")
		return 0, err
	}
	if corrected > 0 {
		r.logService.Log.WithFields(fields).WithField("count", corrected).Warn("Corrected drifted item counts")
	} else {
		r.logService.Log.WithFields(fields).Debug("Item counts consistent")
	}
	return corrected, nil
}
