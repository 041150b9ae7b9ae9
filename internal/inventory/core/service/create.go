package service

import (
	"context"
	"fmt"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// CreateOutcome is the result of an AddVehicle call whose create stage
// succeeded. UploadErr is set when the record exists on the backend but its
// images could not be attached.
type CreateOutcome struct {
	Record    *model.VehicleRecord
	UploadErr error
	// State is the final pipeline state: completed or upload_failed.
	State string
}

// AddVehicle creates draft on the backend and then attaches files to the
// new record. The create is not optimistic: nothing appears in the list until
// the backend returns an id.
//
// The returned error covers only the create stage (*core.ValidationError or
// *core.TransportError). An upload failure is reported in
// CreateOutcome.UploadErr as a *core.UploadError.
func (s *Service) AddVehicle(ctx context.Context, draft *model.VehicleDraft, files []model.Blob) (*CreateOutcome, error) {
	if !s.alive() {
		return nil, core.ErrClosed
	}
	if draft == nil {
		return nil, fmt.Errorf("create: draft is required")
	}

	d := *draft
	d.Normalize()
	if fields := d.Validate(); fields != nil {
		return nil, &core.ValidationError{Op: "create", Fields: fields}
	}

	p := newCreatePipeline(s.logger)
	if err := p.Event(ctx, EventSubmit); err != nil {
		return nil, err
	}

	record, err := s.remote.Create(ctx, &d)
	if err == nil && !record.Persisted() {
		err = &core.TransportError{Op: "create", Err: core.ErrNotPersisted}
	}
	if err != nil {
		_ = p.Event(ctx, EventCreateFail, err)
		s.logger.Warn("Create rejected", "error", err)
		return nil, err
	}
	if err := p.Event(ctx, EventCreateOK, record); err != nil {
		return nil, err
	}
	s.logger.Info("Vehicle created", "id", record.ID, "title", record.Title())

	if s.add(record.Clone()) {
		s.emit(ctx, model.EventCreated, record.ID, s.count(), nil)
	}

	outcome := &CreateOutcome{Record: record}
	if len(files) == 0 {
		if err := p.Event(ctx, EventFinish); err != nil {
			return nil, err
		}
		outcome.State = p.Current()
		return outcome, nil
	}

	outcome.UploadErr = s.runUpload(ctx, p, files)
	outcome.State = p.Current()
	return outcome, nil
}

// RetryUpload re-runs only the upload stage for a vehicle that already
// exists on the backend.
func (s *Service) RetryUpload(ctx context.Context, id int64, files []model.Blob) error {
	if !s.alive() {
		return core.ErrClosed
	}
	if len(files) == 0 {
		return nil
	}

	p := newCreatePipeline(s.logger)
	p.Record = &model.VehicleRecord{ID: id}
	p.SetState(StateUploadFailed)
	return s.runUpload(ctx, p, files)
}

func (s *Service) runUpload(ctx context.Context, p *CreatePipeline, files []model.Blob) error {
	var id int64
	if p.Record != nil {
		id = p.Record.ID
	}
	if err := p.beginUpload(ctx); err != nil {
		return &core.UploadError{VehicleID: id, Files: len(files), Err: err}
	}

	if err := s.assets.Attach(ctx, id, files); err != nil {
		_ = p.Event(ctx, EventUploadFail, err)
		if s.alive() {
			s.emit(ctx, model.EventUploadFailed, id, len(files), err)
		}
		return err
	}

	if err := p.Event(ctx, EventUploadOK); err != nil {
		return &core.UploadError{VehicleID: id, Files: len(files), Err: err}
	}
	if s.alive() {
		s.emit(ctx, model.EventImagesAttached, id, len(files), nil)
	}
	return nil
}
