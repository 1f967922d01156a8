package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the remote service's task status code.
type Status int

const (
	StatusActive  Status = 1
	StatusDone    Status = 2
	StatusOverdue Status = 3
)

// String returns the user-facing label.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Активная"
	case StatusDone:
		return "Выполнена"
	case StatusOverdue:
		return "Просрочена"
	default:
		return fmt.Sprintf("Статус %d", int(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("task status: %w", err)
	}
	*s = Status(v)
	return nil
}

// Task mirrors the remote service's task record. Deadline and created_at
// arrive as RFC 3339 strings; completed_at is null until the task is done.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Status      Status     `json:"status"`
	Categories  []Category `json:"categories"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
