package service

import (
	"context"
	"sync"
	"sync/atomic"

	"k8s.io/utils/clock"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/pkg/log"
)

// SnapshotKey is the cache slot holding the last known-good vehicle list.
const SnapshotKey = "cars"

// Service is the synchronization controller. It owns the in-memory vehicle
// list and is the only component that reads or writes the cache snapshot.
// One Service is built per process and handed to the presentation layer.
//
// Network calls run without holding any lock. Applying a load result to the
// in-memory list and writing the snapshot happen together under loadMu, so
// the list and the snapshot always come from the same load.
type Service struct {
	remote   core.RemoteRepository
	cache    core.CacheStore
	assets   core.AssetUploader
	notifier core.EventNotifier
	clock    clock.PassiveClock
	logger   log.Logger

	loadMu sync.Mutex

	mu       sync.Mutex
	vehicles []model.VehicleRecord
	// generation increases on every change of vehicles.
	generation uint64
	// closed is only set while holding mu.
	closed atomic.Bool

	obsMu     sync.Mutex
	observers map[int]func([]model.VehicleRecord)
	nextObs   int
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier sets the adapter that receives InventoryEvents.
func WithNotifier(n core.EventNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock replaces the wall clock used for snapshot and event timestamps.
func WithClock(c clock.PassiveClock) Option {
	return func(s *Service) { s.clock = c }
}

// WithAssetUploader replaces the default AssetCoordinator.
func WithAssetUploader(u core.AssetUploader) Option {
	return func(s *Service) { s.assets = u }
}

// New creates a Service. Dependency injection happens here.
func New(remote core.RemoteRepository, cache core.CacheStore, opts ...Option) *Service {
	s := &Service{
		remote:    remote,
		cache:     cache,
		notifier:  core.NopNotifier{},
		clock:     clock.RealClock{},
		logger:    log.WithName("sync"),
		vehicles:  []model.VehicleRecord{},
		observers: make(map[int]func([]model.VehicleRecord)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.assets == nil {
		s.assets = NewAssetCoordinator(remote)
	}
	return s
}

// Vehicles returns a copy of the current in-memory list.
func (s *Service) Vehicles() []model.VehicleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneRecords(s.vehicles)
}

// Subscribe registers fn to receive the vehicle list after every change.
// fn runs on the goroutine that made the change and must not call
// LoadInventory. The returned func unregisters it.
func (s *Service) Subscribe(fn func([]model.VehicleRecord)) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// Close marks the service as torn down. Calls still in flight complete, but
// their results are no longer applied to the in-memory list or the cache.
func (s *Service) Close() {
	s.mu.Lock()
	already := s.closed.Swap(true)
	s.mu.Unlock()
	if already {
		return
	}
	s.obsMu.Lock()
	clear(s.observers)
	s.obsMu.Unlock()
}

func (s *Service) alive() bool {
	return !s.closed.Load()
}

// replace swaps the in-memory list. Once the service is closed nothing is
// applied and replace reports false.
func (s *Service) replace(records []model.VehicleRecord) bool {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false
	}
	s.vehicles = model.CloneRecords(records)
	s.generation++
	s.mu.Unlock()

	s.publish()
	return true
}

// add appends a confirmed record unless the service is closed.
func (s *Service) add(record model.VehicleRecord) bool {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return false
	}
	s.vehicles = append(s.vehicles, record)
	s.generation++
	s.mu.Unlock()

	s.publish()
	return true
}

func (s *Service) publish() {
	if !s.alive() {
		return
	}
	snapshot := s.Vehicles()

	s.obsMu.Lock()
	fns := make([]func([]model.VehicleRecord), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(model.CloneRecords(snapshot))
	}
}

// emit forwards an event to the notifier. Delivery failures are logged and
// otherwise ignored.
func (s *Service) emit(ctx context.Context, typ model.EventType, vehicleID int64, count int, cause error) {
	event := &model.InventoryEvent{
		Type:      typ,
		VehicleID: vehicleID,
		Count:     count,
		Time:      s.clock.Now().UTC(),
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to deliver inventory event", "type", typ, "error", err)
	}
}
