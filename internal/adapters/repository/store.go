// Package repository persists medicines and the adherence ledger as opaque
// JSON blobs in a key-value backend.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/pkg/metrics"
)

// Keys under which the two collections are stored.
const (
	KeyMedicines = "medicines"
	KeyLedger    = "adherence"
)

// Store loads and saves application state. A false bool from a Load method
// means nothing has been saved yet.
type Store interface {
	LoadMedicines(ctx context.Context) ([]model.Medicine, bool, error)
	LoadLedger(ctx context.Context) ([]model.AdherenceDay, bool, error)
	SaveMedicines(ctx context.Context, meds []model.Medicine) error
	SaveLedger(ctx context.Context, days []model.AdherenceDay) error
}

// KV is a minimal byte store, the shape of browser local storage.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// BlobStore implements Store on top of a KV, one JSON array per key.
// There is no versioning and no atomicity across the two keys.
type BlobStore struct {
	kv KV
}

// NewBlobStore wraps kv.
func NewBlobStore(kv KV) *BlobStore {
	return &BlobStore{kv: kv}
}

// LoadMedicines decodes the medicines blob.
func (s *BlobStore) LoadMedicines(ctx context.Context) ([]model.Medicine, bool, error) {
	var meds []model.Medicine
	ok, err := s.load(ctx, KeyMedicines, &meds)
	return meds, ok, err
}

// LoadLedger decodes the adherence blob.
func (s *BlobStore) LoadLedger(ctx context.Context) ([]model.AdherenceDay, bool, error) {
	var days []model.AdherenceDay
	ok, err := s.load(ctx, KeyLedger, &days)
	return days, ok, err
}

// SaveMedicines encodes and writes the medicines blob.
func (s *BlobStore) SaveMedicines(ctx context.Context, meds []model.Medicine) error {
	if meds == nil {
		meds = []model.Medicine{}
	}
	return s.save(ctx, KeyMedicines, meds)
}

// SaveLedger encodes and writes the adherence blob.
func (s *BlobStore) SaveLedger(ctx context.Context, days []model.AdherenceDay) error {
	if days == nil {
		days = []model.AdherenceDay{}
	}
	return s.save(ctx, KeyLedger, days)
}

func (s *BlobStore) load(ctx context.Context, key string, into any) (found bool, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperation("load", key, float64(time.Since(start).Milliseconds()), err)
	}()

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, fmt.Errorf("load %s: %w: %v", key, ErrDecode, err)
	}
	return true, nil
}

func (s *BlobStore) save(ctx context.Context, key string, v any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreOperation("save", key, float64(time.Since(start).Milliseconds()), err)
	}()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w: %v", key, ErrEncode, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
