// Package records owns the canonical list of service records: it persists
// the list through a key-value port, announces mutations, and derives the
// monthly rollups and search results consumers display.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/domain/models"
	"github.com/mamadbah2/suraksha/internal/metrics"
	"github.com/mamadbah2/suraksha/internal/repository/kv"
)

// ErrRecordNotFound is returned by Update and Delete when no record has the given id.
var ErrRecordNotFound = errors.New("service record not found")

// CreatedAtLayout is the millisecond UTC ISO-8601 form createdAt is stored in.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// Notifier receives one confirmation per successful mutation.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithKey overrides the storage key the snapshot lives under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store holds the record sequence, most recently created first. Mutations
// are serialized; reads work on a copy taken under the lock.
type Store struct {
	mu       sync.Mutex
	records  []models.ServiceRecord
	storage  kv.Store
	notifier Notifier
	logger   *zap.Logger
	key      string
	now      func() time.Time
	newID    func() string
	ready    atomic.Bool
}

// NewStore wires a store over the given persistence port. Call Load before serving.
func NewStore(storage kv.Store, notifier Notifier, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		records:  []models.ServiceRecord{},
		storage:  storage,
		notifier: notifier,
		logger:   logger,
		key:      config.DefaultStorageKey,
		now:      time.Now,
		newID:    newRecordID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load restores the persisted sequence. A missing snapshot is replaced by the
// demo seed, which is written back. An unreadable snapshot also falls back to
// the seed but is left untouched in storage.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.ready.Store(true)

	raw, err := s.storage.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		s.records = SeedRecords()
		s.logger.Info("no persisted records, seeded demo data", zap.Int("count", len(s.records)))
		s.persistLocked(ctx)
	case err != nil:
		metrics.PersistenceFailures.WithLabelValues("load").Inc()
		s.logger.Error("failed to load records, using demo data", zap.Error(err))
		s.records = SeedRecords()
	default:
		var loaded []models.ServiceRecord
		if err := json.Unmarshal(raw, &loaded); err != nil {
			metrics.PersistenceFailures.WithLabelValues("decode").Inc()
			s.logger.Error("failed to decode persisted records, using demo data", zap.Error(err))
			s.records = SeedRecords()
			break
		}
		if loaded == nil {
			loaded = []models.ServiceRecord{}
		}
		s.records = loaded
		s.logger.Info("records loaded", zap.Int("count", len(s.records)))
	}
	metrics.RecordsHeld.Set(float64(len(s.records)))
}

// Ready reports whether Load has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// List returns a copy of the full record sequence.
func (s *Store) List() []models.ServiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.ServiceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.records[i], true
	}
	return models.ServiceRecord{}, false
}

// Create stores a new record at the head of the sequence and returns it.
func (s *Store) Create(ctx context.Context, input models.RecordInput) models.ServiceRecord {
	s.mu.Lock()
	record := models.ServiceRecord{
		ID:          s.newID(),
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		ServiceDate: input.ServiceDate,
		ServiceType: input.ServiceType,
		Price:       input.Price,
		Notes:       input.Notes,
		CreatedAt:   s.now().UTC().Format(CreatedAtLayout),
	}
	s.records = append([]models.ServiceRecord{record}, s.records...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.RecordMutations.WithLabelValues("create").Inc()
	s.logger.Info("record created", zap.String("id", record.ID), zap.String("service_date", record.ServiceDate))
	s.notify(ctx, models.Notification{
		Title:       "Customer Added",
		Description: fmt.Sprintf("Service record for %s has been saved.", record.Name),
	})
	return record
}

// Update replaces the supplied fields of the record with the given id. The id
// and createdAt never change. Unknown ids leave the store untouched and
// return ErrRecordNotFound.
func (s *Store) Update(ctx context.Context, id string, patch models.RecordPatch) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("update skipped, unknown record", zap.String("id", id))
		return ErrRecordNotFound
	}
	patch.Apply(&s.records[i])
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.RecordMutations.WithLabelValues("update").Inc()
	s.logger.Info("record updated", zap.String("id", id))
	s.notify(ctx, models.Notification{
		Title:       "Record Updated",
		Description: "Customer record has been updated successfully.",
	})
	return nil
}

// Delete removes the record with the given id. Unknown ids leave the store
// untouched and return ErrRecordNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("delete skipped, unknown record", zap.String("id", id))
		return ErrRecordNotFound
	}
	remaining := make([]models.ServiceRecord, 0, len(s.records)-1)
	remaining = append(remaining, s.records[:i]...)
	s.records = append(remaining, s.records[i+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.RecordMutations.WithLabelValues("delete").Inc()
	s.logger.Info("record deleted", zap.String("id", id))
	s.notify(ctx, models.Notification{
		Title:       "Record Deleted",
		Description: "Customer record has been deleted.",
	})
	return nil
}

// CurrentMonthStats rolls up the records of the month now falls in.
func (s *Store) CurrentMonthStats(now time.Time) models.MonthlyStats {
	return Aggregate(s.List(), MonthKey(now))
}

// StatsForMonth rolls up the records of an explicit YYYY-MM month key.
func (s *Store) StatsForMonth(month string) models.MonthlyStats {
	return Aggregate(s.List(), month)
}

// MonthlyHistory rolls up every month that has at least one record, newest first.
func (s *Store) MonthlyHistory() []models.MonthlyStats {
	return History(s.List())
}

// Search returns the records matching query, in store order.
func (s *Store) Search(query string) []models.ServiceRecord {
	return Filter(s.List(), query)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []models.ServiceRecord {
	out := make([]models.ServiceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// persistLocked writes the whole sequence. Failures are logged and counted;
// the in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	metrics.RecordsHeld.Set(float64(len(s.records)))

	payload, err := json.Marshal(s.records)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("write").Inc()
		s.logger.Error("failed to encode records", zap.Error(err))
		return
	}
	if err := s.storage.Put(ctx, s.key, payload); err != nil {
		metrics.PersistenceFailures.WithLabelValues("write").Inc()
		s.logger.Warn("failed to persist records, keeping in-memory state",
			zap.String("key", s.key), zap.Int("count", len(s.records)), zap.Error(err))
	}
}

func (s *Store) notify(ctx context.Context, n models.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}
