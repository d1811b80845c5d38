package model

import (
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Category string

const (
	CategorySchool  Category = "School"
	CategoryChores  Category = "Chores"
	CategoryErrands Category = "Errands"
)

// Task is one user obligation. ID and UserID never change after
// creation. PendingSync marks a record written while the device was
// offline; only the sync sweep clears it, ordinary edits never do.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	PendingSync bool       `json:"pendingSync"`
}
