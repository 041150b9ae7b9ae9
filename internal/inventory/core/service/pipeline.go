package service

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
	fsmutil "github.com/autopeer-io/inventory/internal/pkg/util/fsm"
	"github.com/autopeer-io/inventory/pkg/log"
)

// Create pipeline states.
const (
	StateDrafting     = "drafting"
	StateCreating     = "creating"
	StateCreated      = "created"
	StateCreateFailed = "create_failed"
	StateUploading    = "uploading"
	StateUploadFailed = "upload_failed"
	StateCompleted    = "completed"
)

// Create pipeline events.
const (
	// EventSubmit sends the draft to the backend.
	EventSubmit = "event_submit"
	// EventCreateOK records the server-assigned id.
	EventCreateOK = "event_create_ok"
	// EventCreateFail
	EventCreateFail = "event_create_fail"
	// EventUpload (Guarded) starts the upload stage; only allowed with an id.
	EventUpload = "event_upload"
	// EventUploadOK
	EventUploadOK = "event_upload_ok"
	// EventUploadFail
	EventUploadFail = "event_upload_fail"
	// EventFinish completes a create that had no images.
	EventFinish = "event_finish"
)

// CreatePipeline tracks one addVehicle call through its two stages. The
// record is only set once the backend has confirmed it.
type CreatePipeline struct {
	*fsm.FSM

	Record *model.VehicleRecord
	Err    error

	logger log.Logger
}

func newCreatePipeline(logger log.Logger) *CreatePipeline {
	p := &CreatePipeline{logger: logger}

	events := fsm.Events{
		{Name: EventSubmit, Src: []string{StateDrafting}, Dst: StateCreating},
		{Name: EventCreateOK, Src: []string{StateCreating}, Dst: StateCreated},
		{Name: EventCreateFail, Src: []string{StateCreating}, Dst: StateCreateFailed},
		{Name: EventFinish, Src: []string{StateCreated}, Dst: StateCompleted},
		{Name: EventUploadOK, Src: []string{StateUploading}, Dst: StateCompleted},
		{Name: EventUploadFail, Src: []string{StateUploading}, Dst: StateUploadFailed},

		// Upload failures can be retried without recreating the vehicle.
		{Name: EventUpload, Src: []string{StateCreated, StateUploadFailed}, Dst: StateUploading},
	}

	callbacks := fsm.Callbacks{
		"before_" + EventUpload: fsmutil.Guard(p.GuardPersisted),

		"enter_" + StateCreated:      fsmutil.WrapEvent(p.ActionEnterCreated),
		"enter_" + StateCreateFailed: fsmutil.WrapEvent(p.ActionEnterFailed),
		"enter_" + StateUploadFailed: fsmutil.WrapEvent(p.ActionEnterFailed),
		"enter_" + StateCompleted:    fsmutil.WrapEvent(p.ActionEnterCompleted),
		"enter_state":                fsmutil.WrapEvent(p.logTransition),
	}

	p.FSM = fsm.NewFSM(StateDrafting, events, callbacks)
	return p
}

// GuardPersisted rejects the upload stage unless the record has an id.
func (p *CreatePipeline) GuardPersisted(_ context.Context, _ *fsm.Event) error {
	if p.Record == nil || !p.Record.Persisted() {
		return core.ErrNotPersisted
	}
	return nil
}

// ActionEnterCreated stores the confirmed record; Args[0] is the record.
func (p *CreatePipeline) ActionEnterCreated(_ context.Context, e *fsm.Event) error {
	if len(e.Args) > 0 {
		if r, ok := e.Args[0].(*model.VehicleRecord); ok {
			p.Record = r
		}
	}
	p.Err = nil
	metrics.MutationTotal.WithLabelValues("create", "success").Inc()
	return nil
}

// ActionEnterFailed stores the stage error; Args[0] is the error.
func (p *CreatePipeline) ActionEnterFailed(_ context.Context, e *fsm.Event) error {
	if len(e.Args) > 0 {
		if err, ok := e.Args[0].(error); ok {
			p.Err = err
		}
	}
	if e.Dst == StateCreateFailed {
		metrics.MutationTotal.WithLabelValues("create", "failed").Inc()
	}
	return nil
}

func (p *CreatePipeline) ActionEnterCompleted(_ context.Context, _ *fsm.Event) error {
	p.Err = nil
	return nil
}

func (p *CreatePipeline) logTransition(_ context.Context, e *fsm.Event) error {
	var id int64
	if p.Record != nil {
		id = p.Record.ID
	}
	p.logger.Debug("Create pipeline transition", "event", e.Event, "from", e.Src, "to", e.Dst, "id", id)
	return nil
}

// beginUpload fires EventUpload and maps a cancelled guard to ErrNotPersisted.
func (p *CreatePipeline) beginUpload(ctx context.Context) error {
	err := p.Event(ctx, EventUpload)
	if err == nil {
		return nil
	}
	var canceled fsm.CanceledError
	if errors.As(err, &canceled) {
		return core.ErrNotPersisted
	}
	return err
}
