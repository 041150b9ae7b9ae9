package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autopeer-io/inventory/pkg/options"
)

type fakeObjects map[string]string

func (f fakeObjects) GetObject(_ context.Context, bucket, key string) ([]byte, string, error) {
	v, ok := f[bucket+"/"+key]
	if !ok {
		return nil, "", errors.New("NoSuchKey")
	}
	return []byte(v), "image/jpeg", nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	refs := []string{
		writeFile(t, dir, "a.jpg", "A"),
		"s3://photos/cars/b.jpg",
		writeFile(t, dir, "c.png", "C"),
	}

	l := NewLoaderWithSource(fakeObjects{"photos/cars/b.jpg": "B"})
	blobs, err := l.Load(context.Background(), refs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var names, data []string
	for _, b := range blobs {
		names = append(names, b.Name)
		data = append(data, string(b.Data))
	}
	if strings.Join(names, ",") != "a.jpg,b.jpg,c.png" || strings.Join(data, "") != "ABC" {
		t.Errorf("unexpected blobs: names=%v data=%v", names, data)
	}
	if blobs[0].ContentType != "image/jpeg" || blobs[2].ContentType != "image/png" {
		t.Errorf("content types: %q %q", blobs[0].ContentType, blobs[2].ContentType)
	}
}

func TestLoadFailsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	refs := []string{writeFile(t, dir, "a.jpg", "A"), filepath.Join(dir, "missing.jpg")}

	l, err := NewLoader(options.NewS3Options())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background(), refs); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadS3WithoutEndpoint(t *testing.T) {
	l, err := NewLoader(options.NewS3Options())
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.Load(context.Background(), []string{"s3://photos/a.jpg"})
	if err == nil || !strings.Contains(err.Error(), "--s3.endpoint") {
		t.Errorf("expected endpoint hint, got %v", err)
	}
}

func TestLoadBadS3Reference(t *testing.T) {
	l := NewLoaderWithSource(fakeObjects{})
	for _, ref := range []string{"s3://bucket-only", "s3:///key"} {
		if _, err := l.Load(context.Background(), []string{ref}); err == nil {
			t.Errorf("Load(%q) should fail", ref)
		}
	}
}

func TestLoadNothing(t *testing.T) {
	blobs, err := NewLoaderWithSource(nil).Load(context.Background(), nil)
	if err != nil || blobs != nil {
		t.Errorf("Load(nil) = %v, %v", blobs, err)
	}
}
