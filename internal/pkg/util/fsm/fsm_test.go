package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
)

func TestGuardCancelsTransition(t *testing.T) {
	errDenied := errors.New("denied")
	allow := false

	m := fsm.NewFSM("idle",
		fsm.Events{{Name: "go", Src: []string{"idle"}, Dst: "running"}},
		fsm.Callbacks{
			"before_go": Guard(func(context.Context, *fsm.Event) error {
				if !allow {
					return errDenied
				}
				return nil
			}),
		},
	)

	err := m.Event(context.Background(), "go")
	var canceled fsm.CanceledError
	if !errors.As(err, &canceled) || !errors.Is(canceled.Err, errDenied) {
		t.Fatalf("Event() error = %v, want CanceledError wrapping %v", err, errDenied)
	}
	if m.Current() != "idle" {
		t.Fatalf("state = %q, want idle", m.Current())
	}

	allow = true
	if err := m.Event(context.Background(), "go"); err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if m.Current() != "running" {
		t.Fatalf("state = %q, want running", m.Current())
	}
}
