package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
)

// snapshot is the value stored under SnapshotKey.
type snapshot struct {
	CachedAt time.Time             `json:"cachedAt"`
	Cars     []model.VehicleRecord `json:"cars"`
}

// LoadInventory fetches the list from the backend and mirrors it into the
// cache. When the backend cannot be reached it returns the cached list
// (empty if none) together with the error that triggered the fallback.
func (s *Service) LoadInventory(ctx context.Context) ([]model.VehicleRecord, error) {
	if !s.alive() {
		return nil, core.ErrClosed
	}

	records, err := s.remote.List(ctx)

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if err != nil {
		s.logger.Warn("Backend list failed, falling back to cache", "error", err)

		cached := s.readSnapshot(ctx)
		metrics.InventoryLoadTotal.WithLabelValues("cache").Inc()
		if s.replace(cached) {
			s.emit(ctx, model.EventLoadedFromCache, 0, len(cached), err)
		}
		return cached, err
	}

	metrics.InventoryLoadTotal.WithLabelValues("remote").Inc()
	if !s.replace(records) {
		return records, nil
	}
	s.writeSnapshot(ctx, records)
	s.emit(ctx, model.EventLoaded, 0, len(records), nil)
	return model.CloneRecords(records), nil
}

// Latest loads the inventory and returns at most the first n records.
func (s *Service) Latest(ctx context.Context, n int) ([]model.VehicleRecord, error) {
	records, err := s.LoadInventory(ctx)
	if n >= 0 && len(records) > n {
		records = records[:n]
	}
	return records, err
}

// Vehicle looks id up in the in-memory list, then in the cache snapshot.
func (s *Service) Vehicle(ctx context.Context, id int64) (*model.VehicleRecord, error) {
	s.mu.Lock()
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			r := s.vehicles[i].Clone()
			s.mu.Unlock()
			return &r, nil
		}
	}
	s.mu.Unlock()

	for _, r := range s.readSnapshot(ctx) {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, core.ErrNotFound
}

// readSnapshot returns the cached list. Any cache failure reads as an empty
// list.
func (s *Service) readSnapshot(ctx context.Context) []model.VehicleRecord {
	raw, ok, err := s.cache.Get(ctx, SnapshotKey)
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
		s.logger.Warn("Cache read failed, treating as empty", "error", err)
		return []model.VehicleRecord{}
	}
	if !ok {
		return []model.VehicleRecord{}
	}

	records, err := decodeSnapshot(raw)
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("decode").Inc()
		s.logger.Warn("Cache snapshot is unreadable, treating as empty", "error", err)
		return []model.VehicleRecord{}
	}
	return records
}

// writeSnapshot overwrites the cached list. A failed write does not fail the
// load that triggered it.
func (s *Service) writeSnapshot(ctx context.Context, records []model.VehicleRecord) {
	persisted := make([]model.VehicleRecord, 0, len(records))
	for _, r := range records {
		if r.Persisted() {
			persisted = append(persisted, r)
		}
	}

	raw, err := json.Marshal(snapshot{CachedAt: s.clock.Now().UTC(), Cars: persisted})
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("encode").Inc()
		s.logger.Error(err, "Failed to encode cache snapshot")
		return
	}
	if err := s.cache.Set(ctx, SnapshotKey, raw); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		s.logger.Warn("Cache write failed, snapshot is stale", "error", err)
		return
	}
	metrics.CachedVehicles.Set(float64(len(persisted)))
}

// decodeSnapshot accepts both the current {cachedAt, cars} object and a
// bare JSON array of records.
func decodeSnapshot(raw []byte) ([]model.VehicleRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	records := []model.VehicleRecord{}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var snap snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, err
	}
	if snap.Cars != nil {
		records = snap.Cars
	}
	return records, nil
}
