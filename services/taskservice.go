package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindmap/model"
	"mindmap/store"
)

const tasksCollection = "tasks"

type TaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	Category    model.Category
	DueDate     *time.Time
}

// TaskUpdate carries one optional per mutable attribute. A nil pointer
// leaves the field untouched; ClearDueDate writes an explicit null,
// which is distinct from an absent field.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Priority     *model.Priority
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskService is the ownership-scoped CRUD facade over the document
// store. It holds no mutable state of its own; per-document write
// serialization is the store's job.
type TaskService struct {
	store   store.DocumentStore
	auth    AuthProvider
	network *NetworkService
	now     func() time.Time
}

func NewTaskService(st store.DocumentStore, auth AuthProvider, network *NetworkService) *TaskService {
	return &TaskService{store: st, auth: auth, network: network, now: time.Now}
}

func (s *TaskService) AddTask(ctx context.Context, input TaskInput) (string, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !validPriority(priority) {
		return "", ErrInvalidPriority
	}
	if !validCategory(input.Category) {
		return "", ErrInvalidCategory
	}

	id := uuid.New().String()
	data := map[string]interface{}{
		"title":       title,
		"priority":    string(priority),
		"category":    string(input.Category),
		"completed":   false,
		"userId":      userID,
		"createdAt":   s.now().UTC(),
		"pendingSync": !s.network.IsOnline(),
	}
	if input.Description != "" {
		data["description"] = input.Description
	}
	// a task without a due date gets no dueDate field at all
	if input.DueDate != nil {
		data["dueDate"] = input.DueDate.UTC()
	}

	if err := s.store.Create(ctx, tasksCollection, id, data); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	return id, nil
}

func (s *TaskService) GetTasks(ctx context.Context) ([]model.Task, error) {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	snaps, err := s.store.Query(ctx, tasksCollection, store.Filter{Path: "userId", Value: userID})
	if err != nil {
		// transient read failures degrade to an empty list; the UI
		// shows what it has and refetches later
		log.Printf("task: list failed for user %s: %v", userID, err)
		return []model.Task{}, nil
	}

	tasks := make([]model.Task, 0, len(snaps))
	for _, snap := range snaps {
		task, err := taskFromDoc(snap.ID, snap.Data)
		if err != nil {
			log.Printf("task: skipping malformed doc %s: %v", snap.ID, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, upd TaskUpdate) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if err := s.verifyOwner(ctx, userID, id); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		fields["title"] = title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Priority != nil {
		if !validPriority(*upd.Priority) {
			return ErrInvalidPriority
		}
		fields["priority"] = string(*upd.Priority)
	}
	if upd.Completed != nil {
		fields["completed"] = *upd.Completed
	}
	switch {
	case upd.ClearDueDate:
		// explicit null means "cleared"
		fields["dueDate"] = nil
	case upd.DueDate != nil:
		fields["dueDate"] = upd.DueDate.UTC()
	}
	if len(fields) == 0 {
		return ErrNoFields
	}

	// offline edits carry the pending flag like offline creates do;
	// online edits never touch it, only the sync sweep clears it
	if !s.network.IsOnline() {
		fields["pendingSync"] = true
	}

	if err := s.store.Update(ctx, tasksCollection, id, fields); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	userID, ok := s.auth.CurrentUserID(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if err := s.verifyOwner(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, tasksCollection, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// verifyOwner re-derives ownership from the stored record itself; an
// id supplied by the caller is never trusted on its own. A record that
// is absent and a record owned by someone else are indistinguishable
// to the caller.
func (s *TaskService) verifyOwner(ctx context.Context, userID, id string) error {
	data, err := s.store.Get(ctx, tasksCollection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("load task: %w", err)
	}
	if owner, _ := data["userId"].(string); owner != userID {
		return ErrTaskNotFound
	}
	return nil
}

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		return true
	}
	return false
}

func validCategory(c model.Category) bool {
	switch c {
	case model.CategorySchool, model.CategoryChores, model.CategoryErrands:
		return true
	}
	return false
}

func taskFromDoc(id string, data map[string]interface{}) (model.Task, error) {
	title, ok := data["title"].(string)
	if !ok {
		return model.Task{}, errors.New("missing title")
	}
	task := model.Task{ID: id, Title: title}
	task.UserID, _ = data["userId"].(string)
	task.Description, _ = data["description"].(string)
	if p, ok := data["priority"].(string); ok {
		task.Priority = model.Priority(p)
	}
	if c, ok := data["category"].(string); ok {
		task.Category = model.Category(c)
	}
	task.Completed, _ = data["completed"].(bool)
	task.PendingSync, _ = data["pendingSync"].(bool)
	if t, ok := data["createdAt"].(time.Time); ok {
		task.CreatedAt = t
	}
	if t, ok := data["dueDate"].(time.Time); ok {
		due := t
		task.DueDate = &due
	}
	return task, nil
}
