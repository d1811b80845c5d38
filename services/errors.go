package services

import "errors"

var (
	ErrUnauthenticated = errors.New("no authenticated user")
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidPriority = errors.New("unknown task priority")
	ErrInvalidCategory = errors.New("unknown task category")
	ErrNoFields        = errors.New("no fields to update")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailNotFound   = errors.New("email not found")
	ErrWrongAnswer     = errors.New("incorrect security answer")
)
