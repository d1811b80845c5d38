package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindmap/store"
)

const (
	notificationTitle       = "MindMap"
	notificationsCollection = "notifications"
)

// Notifier delivers one local notification: immediately when at is
// nil, at the given instant otherwise.
type Notifier interface {
	Notify(ctx context.Context, title, body string, at *time.Time) error
}

// ReminderService turns a task's due date into exactly one
// notification at creation time. A due date already in the past fires
// right away with a past-due body; a future one is bound to the exact
// due instant. Editing the task later never reschedules or cancels
// the original notification.
type ReminderService struct {
	notifier Notifier
	now      func() time.Time
}

func NewReminderService(notifier Notifier) *ReminderService {
	return &ReminderService{notifier: notifier, now: time.Now}
}

func (s *ReminderService) ScheduleReminder(ctx context.Context, dueDate *time.Time, title string) error {
	if dueDate == nil {
		return nil
	}
	if !dueDate.After(s.now()) {
		body := fmt.Sprintf("Past due task: %s\nDue date: %s", title, dueDate.Format(time.RFC1123))
		return s.notifier.Notify(ctx, notificationTitle, body, nil)
	}
	body := fmt.Sprintf("Upcoming task: %s\nDue date: %s", title, dueDate.Format(time.RFC1123))
	at := *dueDate
	return s.notifier.Notify(ctx, notificationTitle, body, &at)
}

// StoreNotifier persists notifications for the delivery worker to pick
// up. Scheduled ones carry their deliver-at instant; immediate ones
// leave the field unset.
type StoreNotifier struct {
	store store.DocumentStore
	now   func() time.Time
}

func NewStoreNotifier(st store.DocumentStore) *StoreNotifier {
	return &StoreNotifier{store: st, now: time.Now}
}

func (n *StoreNotifier) Notify(ctx context.Context, title, body string, at *time.Time) error {
	data := map[string]interface{}{
		"title":     title,
		"body":      body,
		"sent":      false,
		"createdAt": n.now().UTC(),
	}
	if at != nil {
		data["deliverAt"] = at.UTC()
	}
	return n.store.Create(ctx, notificationsCollection, uuid.New().String(), data)
}
