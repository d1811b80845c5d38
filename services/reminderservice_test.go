package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"mindmap/store"
)

type capturedNotification struct {
	title string
	body  string
	at    *time.Time
}

type fakeNotifier struct {
	sent []capturedNotification
}

func (n *fakeNotifier) Notify(ctx context.Context, title, body string, at *time.Time) error {
	n.sent = append(n.sent, capturedNotification{title: title, body: body, at: at})
	return nil
}

func newReminderEnv(now time.Time) (*fakeNotifier, *ReminderService) {
	notifier := &fakeNotifier{}
	svc := NewReminderService(notifier)
	svc.now = func() time.Time { return now }
	return notifier, svc
}

func TestScheduleReminderFuture(t *testing.T) {
	now := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	notifier, svc := newReminderEnv(now)

	if err := svc.ScheduleReminder(context.Background(), &due, "Math HW"); err != nil {
		t.Fatalf("ScheduleReminder failed: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}

	got := notifier.sent[0]
	if got.title != "MindMap" {
		t.Errorf("expected title MindMap, got %s", got.title)
	}
	if got.at == nil || !got.at.Equal(due) {
		t.Errorf("expected trigger at %v, got %v", due, got.at)
	}
	if !strings.Contains(got.body, "Upcoming task: Math HW") {
		t.Errorf("unexpected body: %s", got.body)
	}
}

func TestScheduleReminderPastDueFiresImmediately(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	notifier, svc := newReminderEnv(now)

	if err := svc.ScheduleReminder(context.Background(), &due, "Math HW"); err != nil {
		t.Fatalf("ScheduleReminder failed: %v", err)
	}

	got := notifier.sent[0]
	if got.at != nil {
		t.Errorf("past-due reminder must fire immediately, got trigger %v", got.at)
	}
	if !strings.Contains(got.body, "Past due task: Math HW") {
		t.Errorf("expected past-due label, got: %s", got.body)
	}
}

func TestScheduleReminderExactlyNowIsPastDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	due := now
	notifier, svc := newReminderEnv(now)

	svc.ScheduleReminder(context.Background(), &due, "x")
	if notifier.sent[0].at != nil {
		t.Errorf("due date equal to now must fire immediately")
	}
}

func TestScheduleReminderWithoutDueDate(t *testing.T) {
	notifier, svc := newReminderEnv(time.Now())

	if err := svc.ScheduleReminder(context.Background(), nil, "x"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("no due date must mean no notification")
	}
}

func TestStoreNotifierPersistsNotification(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	notifier := NewStoreNotifier(st)

	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if err := notifier.Notify(ctx, "MindMap", "Upcoming task: x", &due); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	snaps, _ := st.Query(ctx, "notifications")
	if len(snaps) != 1 {
		t.Fatalf("expected 1 notification doc, got %d", len(snaps))
	}
	data := snaps[0].Data
	if data["sent"] != false {
		t.Errorf("expected sent=false, got %v", data["sent"])
	}
	if at, ok := data["deliverAt"].(time.Time); !ok || !at.Equal(due) {
		t.Errorf("expected deliverAt %v, got %v", due, data["deliverAt"])
	}
}

func TestStoreNotifierImmediateOmitsDeliverAt(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	notifier := NewStoreNotifier(st)

	notifier.Notify(ctx, "MindMap", "Past due task: x", nil)

	snaps, _ := st.Query(ctx, "notifications")
	if _, ok := snaps[0].Data["deliverAt"]; ok {
		t.Errorf("immediate notification must not carry deliverAt")
	}
}
