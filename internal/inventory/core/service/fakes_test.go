package service

import (
	"context"
	"errors"
	"sync"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

type fakeRemote struct {
	mu sync.Mutex

	list    []model.VehicleRecord
	listErr error
	// lists, when set, is returned call by call; the last entry repeats.
	lists     [][]model.VehicleRecord
	onList    func(call int)
	listCalls int

	created   *model.VehicleRecord
	createErr error

	deleteErr  error
	onDelete   func(id int64)
	uploadErr  error
	calls      []string
	uploadedTo []int64
}

func (f *fakeRemote) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) List(context.Context) ([]model.VehicleRecord, error) {
	f.record("list")

	f.mu.Lock()
	call := f.listCalls
	f.listCalls++
	list := f.list
	if len(f.lists) > 0 {
		list = f.lists[min(call, len(f.lists)-1)]
	}
	hook := f.onList
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return model.CloneRecords(list), nil
}

func (f *fakeRemote) Create(_ context.Context, d *model.VehicleDraft) (*model.VehicleRecord, error) {
	f.record("create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	r := f.created.Clone()
	r.VehicleDraft = *d
	return &r, nil
}

func (f *fakeRemote) DeleteByID(_ context.Context, id int64) error {
	f.record("delete")
	if f.onDelete != nil {
		f.onDelete(id)
	}
	return f.deleteErr
}

func (f *fakeRemote) UploadAssets(_ context.Context, id int64, _ []model.Blob) error {
	f.record("upload")
	f.mu.Lock()
	f.uploadedTo = append(f.uploadedTo, id)
	f.mu.Unlock()
	return f.uploadErr
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.Join(core.ErrCacheUnavailable, errors.New("disk gone"))
}

func (brokenCache) Set(context.Context, string, []byte) error {
	return errors.Join(core.ErrCacheUnavailable, errors.New("disk gone"))
}

// gatedCache holds the first Set until release is closed.
type gatedCache struct {
	core.CacheStore

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedCache(store core.CacheStore) *gatedCache {
	return &gatedCache{
		CacheStore: store,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (c *gatedCache) Set(ctx context.Context, key string, value []byte) error {
	first := false
	c.once.Do(func() { first = true })
	if first {
		close(c.entered)
		<-c.release
	}
	return c.CacheStore.Set(ctx, key, value)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []model.InventoryEvent
}

func (n *recordingNotifier) Notify(_ context.Context, e *model.InventoryEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, *e)
	return nil
}

func (n *recordingNotifier) Types() []model.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.EventType
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

func car(id int64) model.VehicleRecord {
	return model.VehicleRecord{
		ID: id,
		VehicleDraft: model.VehicleDraft{
			Make:         "VW",
			Model:        "Golf",
			Year:         2018,
			Accident:     model.AccidentNone,
			Fuel:         model.FuelDiesel,
			Transmission: model.TransmissionManual,
		},
	}
}

func ids(records []model.VehicleRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func validDraft() *model.VehicleDraft {
	return &model.VehicleDraft{
		Make:         "Audi",
		Model:        "A4",
		Year:         2020,
		Accident:     model.AccidentNone,
		Fuel:         model.FuelGasoline,
		Transmission: model.TransmissionAutomatic,
		Features:     []string{"ABS", "ABS", "Isofix"},
		Extras:       []string{"Klimaanlage"},
	}
}

func blobs(names ...string) []model.Blob {
	out := make([]model.Blob, 0, len(names))
	for _, n := range names {
		out = append(out, model.Blob{Name: n, ContentType: "image/jpeg", Data: []byte(n)})
	}
	return out
}
