package service

import (
	"context"
	"errors"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
	"github.com/autopeer-io/inventory/pkg/log"
)

var _ core.AssetUploader = (*AssetCoordinator)(nil)

// AssetCoordinator attaches images to a vehicle that already exists on the
// backend. Every failure it returns is a *core.UploadError, so callers can
// tell it apart from a failed create and retry only this stage.
type AssetCoordinator struct {
	remote core.RemoteRepository
	logger log.Logger
}

func NewAssetCoordinator(remote core.RemoteRepository) *AssetCoordinator {
	return &AssetCoordinator{remote: remote, logger: log.WithName("assets")}
}

// Attach uploads files to vehicle id as one batch.
func (c *AssetCoordinator) Attach(ctx context.Context, id int64, files []model.Blob) error {
	if id <= 0 {
		return &core.UploadError{VehicleID: id, Files: len(files), Err: core.ErrNotPersisted}
	}
	if len(files) == 0 {
		return nil
	}

	if err := c.remote.UploadAssets(ctx, id, files); err != nil {
		metrics.MutationTotal.WithLabelValues("upload", "failed").Inc()
		c.logger.Warn("Image upload rejected", "id", id, "files", len(files), "error", err)

		var ue *core.UploadError
		if errors.As(err, &ue) {
			return err
		}
		return &core.UploadError{VehicleID: id, Files: len(files), StatusCode: core.StatusCode(err), Err: err}
	}

	metrics.MutationTotal.WithLabelValues("upload", "success").Inc()
	c.logger.Info("Images attached", "id", id, "files", len(files))
	return nil
}
