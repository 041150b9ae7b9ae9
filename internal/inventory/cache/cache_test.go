package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/pkg/options"
)

// storeContract runs the behavior every backend must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "cars"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}

	if err := s.Set(ctx, "cars", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "cars")
	if err != nil || !ok || string(got) != `[{"id":1}]` {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}

	// overwrite, never merge
	if err := s.Set(ctx, "cars", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _, _ = s.Get(ctx, "cars")
	if string(got) != `[]` {
		t.Errorf("after overwrite Get = %q", got)
	}

	if err := s.Set(ctx, " ", []byte("x")); !errors.Is(err, core.ErrCacheUnavailable) {
		t.Errorf("blank key error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	storeContract(t, s)

	_ = s.Close()
	if _, _, err := s.Get(context.Background(), "cars"); !errors.Is(err, core.ErrCacheUnavailable) {
		t.Errorf("Get after Close = %v, want ErrCacheUnavailable", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemory()
	v := []byte("abc")
	_ = s.Set(context.Background(), "k", v)
	v[0] = 'z'

	got, _, _ := s.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	storeContract(t, s)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "cars", []byte(`[{"id":3}]`)); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "cars")
	if err != nil || !ok || string(got) != `[{"id":3}]` {
		t.Errorf("after reopen Get = %q, %v, %v", got, ok, err)
	}
}

func TestSQLiteClosedIsUnavailable(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	if err := s.Set(context.Background(), "cars", []byte("[]")); !errors.Is(err, core.ErrCacheUnavailable) {
		t.Errorf("Set on closed db = %v, want ErrCacheUnavailable", err)
	}
}

func TestNewSelectsDriver(t *testing.T) {
	opts := options.NewCacheOptions()
	opts.Driver = options.CacheDriverMemory

	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("New(memory) = %T", s)
	}

	opts.Driver = "bolt"
	if _, err := New(opts); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestRedisUnreachable(t *testing.T) {
	// Port 1 is reserved; nothing listens there.
	if _, err := NewRedis("127.0.0.1:1", 0); !errors.Is(err, core.ErrCacheUnavailable) {
		t.Errorf("NewRedis = %v, want ErrCacheUnavailable", err)
	}
}
