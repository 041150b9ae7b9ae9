package service

import (
	"context"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
)

// RemoveVehicle deletes id optimistically: the record leaves the in-memory
// list, observers are notified, and only then is the backend called. If the
// backend refuses, the list is restored and the error is returned.
//
// A second RemoveVehicle for the same id while the first is in flight is not
// guarded against.
func (s *Service) RemoveVehicle(ctx context.Context, id int64) error {
	if !s.alive() {
		return core.ErrClosed
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return core.ErrClosed
	}
	before := model.CloneRecords(s.vehicles)
	index := -1
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			index = i
			break
		}
	}
	if index >= 0 {
		s.vehicles = append(s.vehicles[:index:index], s.vehicles[index+1:]...)
		s.generation++
	}
	gen := s.generation
	s.mu.Unlock()

	if index >= 0 {
		s.publish()
	}

	if err := s.remote.DeleteByID(ctx, id); err != nil {
		metrics.MutationTotal.WithLabelValues("delete", "rolled_back").Inc()
		s.logger.Warn("Delete rejected, rolling back", "id", id, "error", err)
		if index >= 0 && s.rollbackRemove(gen, before, index) {
			s.emit(ctx, model.EventRemoveRolledBack, id, len(before), err)
		}
		return err
	}

	metrics.MutationTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info("Vehicle deleted", "id", id)
	if s.alive() {
		s.emit(ctx, model.EventRemoved, id, s.count(), nil)
	}
	return nil
}

// rollbackRemove restores the list captured before the optimistic removal.
// If something else changed the list in the meantime, only the removed
// record is put back at its old position. Nothing is restored once the
// service is closed.
func (s *Service) rollbackRemove(gen uint64, before []model.VehicleRecord, index int) bool {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false
	}
	if s.generation == gen {
		s.vehicles = before
	} else {
		removed := before[index]
		if !containsID(s.vehicles, removed.ID) {
			at := min(index, len(s.vehicles))
			s.vehicles = append(s.vehicles[:at], append([]model.VehicleRecord{removed}, s.vehicles[at:]...)...)
		}
	}
	s.generation++
	s.mu.Unlock()

	s.publish()
	return true
}

func (s *Service) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.vehicles)
}

func containsID(records []model.VehicleRecord, id int64) bool {
	for i := range records {
		if records[i].ID == id {
			return true
		}
	}
	return false
}
