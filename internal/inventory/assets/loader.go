// Package assets reads image files into memory before they are uploaded.
package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/pkg/options"
)

const (
	// MaxBlobSize caps a single image.
	MaxBlobSize = 20 << 20

	s3Scheme = "s3://"

	defaultConcurrency = 4
)

// ObjectSource fetches an object from a bucket.
type ObjectSource interface {
	GetObject(ctx context.Context, bucket, key string) (data []byte, contentType string, err error)
}

// Loader turns file references into Blobs. A reference is either a local
// path or s3://bucket/key when an object source is configured.
type Loader struct {
	objects     ObjectSource
	concurrency int
}

// NewLoader builds a Loader; the S3 source is only created when an endpoint
// is configured.
func NewLoader(opts *options.S3Options) (*Loader, error) {
	l := &Loader{concurrency: defaultConcurrency}
	if opts.Enabled() {
		src, err := NewMinIOSource(opts)
		if err != nil {
			return nil, err
		}
		l.objects = src
	}
	return l, nil
}

// NewLoaderWithSource builds a Loader around an explicit object source.
func NewLoaderWithSource(src ObjectSource) *Loader {
	return &Loader{objects: src, concurrency: defaultConcurrency}
}

// Load reads every reference concurrently. The result keeps the order of
// refs; the first failure cancels the rest.
func (l *Loader) Load(ctx context.Context, refs []string) ([]model.Blob, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	blobs := make([]model.Blob, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			b, err := l.loadOne(ctx, ref)
			if err != nil {
				return fmt.Errorf("load %s: %w", ref, err)
			}
			blobs[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}

func (l *Loader) loadOne(ctx context.Context, ref string) (model.Blob, error) {
	if strings.HasPrefix(ref, s3Scheme) {
		return l.loadObject(ctx, ref)
	}
	return loadFile(ref)
}

func (l *Loader) loadObject(ctx context.Context, ref string) (model.Blob, error) {
	if l.objects == nil {
		return model.Blob{}, fmt.Errorf("s3 references need --s3.endpoint")
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return model.Blob{}, fmt.Errorf("expected s3://bucket/key")
	}

	data, ct, err := l.objects.GetObject(ctx, bucket, key)
	if err != nil {
		return model.Blob{}, err
	}
	if len(data) > MaxBlobSize {
		return model.Blob{}, fmt.Errorf("object is larger than %d bytes", MaxBlobSize)
	}
	return model.Blob{Name: path.Base(key), ContentType: ct, Data: data}, nil
}

func loadFile(name string) (model.Blob, error) {
	f, err := os.Open(name)
	if err != nil {
		return model.Blob{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxBlobSize+1))
	if err != nil {
		return model.Blob{}, err
	}
	if len(data) > MaxBlobSize {
		return model.Blob{}, fmt.Errorf("file is larger than %d bytes", MaxBlobSize)
	}

	return model.Blob{
		Name:        filepath.Base(name),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(name))),
		Data:        data,
	}, nil
}
