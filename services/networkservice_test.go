package services

import (
	"context"
	"testing"
)

type recordingToggler struct {
	calls []bool
	err   error
}

func (t *recordingToggler) SetNetworkEnabled(ctx context.Context, enabled bool) error {
	t.calls = append(t.calls, enabled)
	return t.err
}

func TestNetworkServiceStartsOnline(t *testing.T) {
	s := NewNetworkService(nil)
	if !s.IsOnline() {
		t.Errorf("expected optimistic online start")
	}
}

func TestNetworkServiceNotifiesOncePerFlip(t *testing.T) {
	ctx := context.Background()
	s := NewNetworkService(nil)

	var got []bool
	s.Subscribe(func(online bool) { got = append(got, online) })

	s.HandleConnectivityChange(ctx, true) // same as initial state
	s.HandleConnectivityChange(ctx, false)
	s.HandleConnectivityChange(ctx, false) // duplicate signal
	s.HandleConnectivityChange(ctx, true)

	want := []bool{false, true}
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestNetworkServiceUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewNetworkService(nil)

	calls := 0
	id := s.Subscribe(func(bool) { calls++ })
	s.HandleConnectivityChange(ctx, false)
	s.Unsubscribe(id)
	s.HandleConnectivityChange(ctx, true)

	if calls != 1 {
		t.Errorf("expected 1 call before unsubscribe, got %d", calls)
	}
}

func TestNetworkServiceTogglesStore(t *testing.T) {
	ctx := context.Background()
	toggler := &recordingToggler{}
	s := NewNetworkService(toggler)

	s.HandleConnectivityChange(ctx, false)
	s.HandleConnectivityChange(ctx, false)
	s.HandleConnectivityChange(ctx, true)

	want := []bool{false, true}
	if len(toggler.calls) != len(want) {
		t.Fatalf("expected toggle calls %v, got %v", want, toggler.calls)
	}
	for i := range want {
		if toggler.calls[i] != want[i] {
			t.Errorf("toggle %d: expected %v, got %v", i, want[i], toggler.calls[i])
		}
	}
}

func TestNetworkServiceToggleFailureStillNotifies(t *testing.T) {
	ctx := context.Background()
	toggler := &recordingToggler{err: context.DeadlineExceeded}
	s := NewNetworkService(toggler)

	notified := false
	s.Subscribe(func(bool) { notified = true })
	s.HandleConnectivityChange(ctx, false)

	if !notified {
		t.Errorf("listener skipped because the store toggle failed")
	}
}

func TestNetworkServicePanickingListenerIsIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewNetworkService(nil)

	reached := false
	s.Subscribe(func(bool) { panic("listener bug") })
	s.Subscribe(func(bool) { reached = true })

	s.HandleConnectivityChange(ctx, false)

	if !reached {
		t.Errorf("panicking listener blocked the rest of the round")
	}
}
