// Package worker runs the background reminder loop: once per poll
// interval it scans for appointments scheduled on the next day and
// notifies the participants, once per appointment per day.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amazons-Team/fatima-api/internal/model"
	"github.com/Amazons-Team/fatima-api/internal/service/notification"
	"github.com/Amazons-Team/fatima-api/internal/store"
	"github.com/Amazons-Team/fatima-api/pkg/logger"
	"github.com/Amazons-Team/fatima-api/pkg/messaging"
	"github.com/Amazons-Team/fatima-api/pkg/metrics"
)

type ReminderConfig struct {
	PollInterval time.Duration
}

type Reminder struct {
	store    *store.AppointmentStore
	notifSvc *notification.Service
	config   ReminderConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu       sync.Mutex
	reminded map[string]string // appointment id -> date reminded
}

func NewReminder(
	s *store.AppointmentStore,
	notifSvc *notification.Service,
	config ReminderConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *Reminder {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Hour
	}
	return &Reminder{
		store:    s,
		notifSvc: notifSvc,
		config:   config,
		logger:   log,
		metrics:  m,
		reminded: make(map[string]string),
	}
}

func (r *Reminder) Start(ctx context.Context) {
	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	r.logger.Info("starting reminder worker")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("shutting down reminder worker")
			return
		case <-ticker.C:
			r.scan(ctx)
		}
	}
}

func (r *Reminder) scan(ctx context.Context) {
	timer := prometheus.NewTimer(r.metrics.ReminderLatency)
	defer timer.ObserveDuration()

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	due := r.store.List(model.AppointmentFilters{
		Date:   tomorrow,
		Status: model.AppointmentStatusScheduled,
	})

	for _, apt := range due {
		if r.alreadyReminded(apt.ID, today) {
			continue
		}
		r.notifSvc.NotifyAppointmentChange(ctx, messaging.TopicAppointmentReminder, apt)
		r.markReminded(apt.ID, today)
		r.metrics.RemindersSent.Inc()
		r.logger.Info("reminder sent", "appointment_id", apt.ID, "date", apt.Date)
	}
}

func (r *Reminder) alreadyReminded(id, today string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reminded[id] == today
}

func (r *Reminder) markReminded(id, today string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Entries from previous days are stale; drop them as we go.
	for k, v := range r.reminded {
		if v != today {
			delete(r.reminded, k)
		}
	}
	r.reminded[id] = today
}
