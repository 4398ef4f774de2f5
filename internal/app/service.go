// Package service owns the tracker state and implements the operations
// required by the HTTP API, the CLI and the reminder ticker.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/meditrack/internal/adapters/notify"
	"github.com/okian/meditrack/internal/adapters/repository"
	"github.com/okian/meditrack/internal/adapters/scheduler"
	"github.com/okian/meditrack/internal/domain/dedupe"
	"github.com/okian/meditrack/internal/domain/ledger"
	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/reconcile"
	"github.com/okian/meditrack/internal/domain/reminder"
	"github.com/okian/meditrack/internal/domain/schedule"
	"github.com/okian/meditrack/internal/domain/types"
	"github.com/okian/meditrack/pkg/logger"
	"github.com/okian/meditrack/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultReminderInterval = time.Minute
	defaultOutboxSize       = 256
	defaultDedupeSize       = 4096
	tickerShutdownTimeout   = 5 * time.Second
)

// Sentinel errors returned by Service operations.
var (
	ErrInvalidInput = model.ErrInvalidInput
	ErrNotFound     = model.ErrNotFound
	ErrNotStarted   = model.ErrNotStarted
)

// NewMedicine is the user input for registering a medicine.
type NewMedicine = types.MedicineInput

// Service holds the medicines and the adherence ledger in memory and writes
// them through to the store after every change.
type Service struct {
	mu sync.Mutex

	// Collaborators
	store     repository.Store
	notifiers []notify.Notifier
	notifier  notify.Notifier
	outbox    *notify.Outbox
	deduper   dedupe.Deduper
	ticker    *scheduler.Ticker
	now       func() time.Time

	// Configuration
	reminderInterval time.Duration
	outboxSize       int
	dedupeSize       int
	runTicker        bool

	// State
	medicines []model.Medicine
	days      []model.AdherenceDay
	started   bool
	cancel    context.CancelFunc

	// Logging
	logger logger.Logger
}

// New constructs a Service. Without WithStore it keeps state in memory only.
func New(opts ...Option) *Service {
	s := &Service{
		now:              time.Now,
		reminderInterval: defaultReminderInterval,
		outboxSize:       defaultOutboxSize,
		dedupeSize:       defaultDedupeSize,
		runTicker:        true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads persisted state and starts the reminder ticker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewBlobStore(repository.NewMemoryKV())
	}

	s.logger.Info(ctx, "starting meditrack service...")

	if err := s.load(ctx); err != nil {
		return err
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.outbox = notify.NewOutbox(notify.WithCapacity(s.outboxSize))
	s.notifier = append(notify.Multi{notify.NewLogNotifier(s.logger.Named("reminder")), s.outbox}, s.notifiers...)

	s.refreshGauges()
	s.started = true

	if s.runTicker {
		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		s.ticker = scheduler.New(func(ctx context.Context) { s.CheckReminders(ctx) },
			scheduler.WithInterval(s.reminderInterval),
			scheduler.WithName("reminders"),
		)
		go s.ticker.Run(runCtx)
	}

	s.logger.Info(ctx, "meditrack service started",
		logger.Int("medicines", len(s.medicines)),
		logger.Int("ledgerDays", len(s.days)),
		logger.String("reminderInterval", s.reminderInterval.String()),
	)

	return nil
}

// load reads both collections. Records that fail validation are skipped.
func (s *Service) load(ctx context.Context) error {
	meds, _, err := s.store.LoadMedicines(ctx)
	if err != nil {
		return fmt.Errorf("load medicines: %w", err)
	}
	days, found, err := s.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load adherence: %w", err)
	}

	s.medicines = make([]model.Medicine, 0, len(meds))
	quarantined := 0
	for i := range meds {
		if err := meds[i].Validate(); err != nil {
			quarantined++
			s.logger.Warn(ctx, "skipping stored medicine",
				logger.String("id", meds[i].ID),
				logger.Error(err),
			)
			continue
		}
		meds[i].Time = model.NormalizeTime(meds[i].Time)
		s.medicines = append(s.medicines, meds[i])
	}
	if quarantined > 0 {
		metrics.RecordQuarantined(quarantined)
	}

	if !found {
		days = ledger.SeedTrailingWeek(s.now())
	}
	s.days = ledger.Trim(days, ledger.MaxDays)
	return nil
}

// Stop stops the reminder ticker and closes the outbox.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	ticker, cancel := s.ticker, s.cancel
	s.ticker, s.cancel = nil, nil
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping meditrack service...")

	// The ticker job takes s.mu, so it must be stopped without holding it.
	if ticker != nil {
		shutdownCtx, done := context.WithTimeout(ctx, tickerShutdownTimeout)
		if err := ticker.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "reminder ticker did not stop", logger.Error(err))
		}
		done()
	}
	if cancel != nil {
		cancel()
	}
	_ = s.outbox.Close()

	s.logger.Info(ctx, "meditrack service stopped")
}

// AddMedicine validates the input, assigns an id and persists the medicine.
func (s *Service) AddMedicine(ctx context.Context, in NewMedicine) (model.Medicine, error) {
	m := model.Medicine{
		Name:       strings.TrimSpace(in.Name),
		Dosage:     strings.TrimSpace(in.Dosage),
		Time:       strings.TrimSpace(in.Time),
		Frequency:  model.Frequency(strings.ToLower(strings.TrimSpace(string(in.Frequency)))),
		Notes:      strings.TrimSpace(in.Notes),
		DoseEvents: []model.DoseEvent{},
	}
	if m.Frequency == "" {
		m.Frequency = model.FrequencyDaily
	}
	if err := validateInput(m); err != nil {
		return model.Medicine{}, err
	}
	m.Time = model.NormalizeTime(m.Time)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Medicine{}, ErrNotStarted
	}

	m.ID = uuid.NewString()
	s.medicines = append(s.medicines, m)
	s.save(ctx)

	metrics.RecordMedicineAdded()
	s.refreshGauges()
	s.logger.Info(ctx, "medicine added",
		logger.String("id", m.ID),
		logger.String("name", m.Name),
		logger.String("frequency", string(m.Frequency)),
	)
	return m, nil
}

func validateInput(m model.Medicine) error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case m.Dosage == "":
		return fmt.Errorf("%w: dosage is required", ErrInvalidInput)
	case !model.ValidTime(m.Time):
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	case !m.Frequency.Known():
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, m.Frequency)
	}
	return nil
}

// DeleteMedicine removes the medicine with the given id.
func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.medicines = append(s.medicines[:i], s.medicines[i+1:]...)
	s.save(ctx)

	metrics.RecordMedicineDeleted()
	s.refreshGauges()
	s.logger.Info(ctx, "medicine deleted", logger.String("id", id))
	return nil
}

// MarkTaken logs a dose of the medicine at the current time.
func (s *Service) MarkTaken(ctx context.Context, id string) (model.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Medicine{}, ErrNotStarted
	}

	i := s.indexOf(id)
	if i < 0 {
		return model.Medicine{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m := &s.medicines[i]
	s.days = reconcile.LogDose(m, s.days, s.now())
	s.save(ctx)

	metrics.RecordDoseLogged()
	s.refreshGauges()
	s.logger.Info(ctx, "dose logged",
		logger.String("id", m.ID),
		logger.String("name", m.Name),
		logger.String("date", m.LastTakenDate),
	)
	return s.copyMedicine(i), nil
}

// Medicines returns every medicine with display fields, in insertion order.
func (s *Service) Medicines(_ context.Context) []types.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	out := make([]types.Medicine, 0, len(s.medicines))
	for i := range s.medicines {
		out = append(out, types.NewMedicine(s.copyMedicine(i), today))
	}
	return out
}

// Schedule returns today's reconciled dose slots ordered by time.
func (s *Service) Schedule(_ context.Context) []types.ScheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	slots := reconcile.Schedule(s.medicines, model.DateKey(now), model.MinuteKey(now))
	out := make([]types.ScheduleEntry, 0, len(slots))
	for _, slot := range slots {
		out = append(out, types.NewScheduleEntry(slot))
	}
	return out
}

// Stats returns the medicine count, today's expected doses and the trailing
// week adherence rate.
func (s *Service) Stats(_ context.Context) types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.Stats{
		TotalMedicines: len(s.medicines),
		TodayDoses:     schedule.TotalDoses(s.medicines),
		AdherenceRate:  ledger.Rate(s.days),
	}
}

// Chart returns the last week of the ledger for plotting.
func (s *Service) Chart(_ context.Context) []types.ChartDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := ledger.Window(s.days, ledger.RateWindow)
	out := make([]types.ChartDay, 0, len(window))
	for _, d := range window {
		out = append(out, types.NewChartDay(d))
	}
	return out
}

// CheckReminders scans the current minute and notifies each due medicine
// once per (medicine, day, slot). It returns the reminders delivered.
func (s *Service) CheckReminders(ctx context.Context) []reminder.Reminder {
	start := time.Now()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	due := reminder.Scan(s.medicines, model.DateKey(now), model.MinuteKey(now))
	notifier, deduper := s.notifier, s.deduper
	s.mu.Unlock()

	var fired []reminder.Reminder
	for _, r := range due {
		if deduper.SeenAndRecord(ctx, r.Key()) {
			metrics.RecordReminderDuplicate()
			continue
		}
		if err := notifier.Notify(ctx, r); err != nil {
			s.logger.Warn(ctx, "reminder delivery failed",
				logger.String("medicine_id", r.MedicineID),
				logger.String("slot", r.Slot),
				logger.Error(err),
			)
			if ctx.Err() != nil {
				// Interrupted, not rejected: allow a rescan in the same minute.
				deduper.Unrecord(ctx, r.Key())
				continue
			}
		}
		fired = append(fired, r)
	}

	metrics.RecordReminderFired(len(fired))
	metrics.RecordReminderScan(float64(time.Since(start).Microseconds()) / 1000)
	return fired
}

// DrainReminders removes up to limit reminders from the outbox.
func (s *Service) DrainReminders(ctx context.Context, limit int) []reminder.Reminder {
	s.mu.Lock()
	outbox := s.outbox
	s.mu.Unlock()

	if outbox == nil {
		return []reminder.Reminder{}
	}
	return outbox.Drain(ctx, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"reminderInterval": s.reminderInterval.String(),
		"outboxSize":       s.outboxSize,
		"dedupeSize":       s.dedupeSize,
	}

	if s.started {
		stats["medicines"] = len(s.medicines)
		stats["ledgerDays"] = len(s.days)
		stats["todayDoses"] = schedule.TotalDoses(s.medicines)
		stats["adherenceRate"] = ledger.Rate(s.days)
		stats["outboxLength"] = s.outbox.Len()
		stats["remindersSeen"] = s.deduper.Size()
	}

	return stats
}

// save writes medicines then the ledger. Failures are logged and counted by
// the store; in-memory state is kept either way.
func (s *Service) save(ctx context.Context) {
	if err := s.store.SaveMedicines(ctx, s.medicines); err != nil {
		s.logger.Error(ctx, "failed to save medicines", logger.Error(err))
	}
	if err := s.store.SaveLedger(ctx, s.days); err != nil {
		s.logger.Error(ctx, "failed to save adherence", logger.Error(err))
	}
}

func (s *Service) refreshGauges() {
	metrics.UpdateMedicineCount(len(s.medicines))
	metrics.UpdateTodayDoses(schedule.TotalDoses(s.medicines))
	metrics.UpdateAdherenceRate(ledger.Rate(s.days))
}

func (s *Service) indexOf(id string) int {
	for i := range s.medicines {
		if s.medicines[i].ID == id {
			return i
		}
	}
	return -1
}

// copyMedicine detaches the dose log so callers cannot alias service state.
func (s *Service) copyMedicine(i int) model.Medicine {
	m := s.medicines[i]
	m.DoseEvents = append([]model.DoseEvent(nil), m.DoseEvents...)
	return m
}
