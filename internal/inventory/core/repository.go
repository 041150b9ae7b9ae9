package core

import (
	"context"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// RemoteRepository is the stateless wrapper around the backend. It never
// recovers errors; it only classifies them (see errors.go).
type RemoteRepository interface {
	// List fetches all persisted vehicles.
	List(ctx context.Context) ([]model.VehicleRecord, error)

	// Create submits a draft and returns the persisted record with its id.
	Create(ctx context.Context, draft *model.VehicleDraft) (*model.VehicleRecord, error)

	// DeleteByID removes a persisted vehicle.
	DeleteByID(ctx context.Context, id int64) error

	// UploadAssets attaches a batch of files to a persisted vehicle in a
	// single request. The batch is accepted or rejected as a whole.
	UploadAssets(ctx context.Context, id int64, files []model.Blob) error
}

// CacheStore is the persistent local key/value store. Only the
// synchronization service touches it.
type CacheStore interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
}

// AssetUploader attaches images to a vehicle that already exists remotely.
type AssetUploader interface {
	Attach(ctx context.Context, id int64, files []model.Blob) error
}
