// Package wizard holds the multi-step task create/update dialog as a pure
// state machine, decoupled from the chat layer so it unit-tests without a
// live conversation.
package wizard

import (
	"errors"
	"sort"
	"time"
	"unicode/utf8"

	"task-tracker/internal/model"
)

// Flow distinguishes the create dialog from the update dialog.
type Flow int

const (
	FlowCreate Flow = iota
	FlowUpdate
)

// Step is the wizard's current position. The sequence is linear with no
// branching; Done is reached after the deadline time step.
type Step int

const (
	StepCategory Step = iota
	StepTitle
	StepDescription
	StepDeadlineDate
	StepDeadlineTime
	StepDone
)

const maxTitleLen = 100

// Validation errors are step-local: the wizard stays on the current step
// and previously collected fields are kept.
var (
	ErrEmptyTitle   = errors.New("title must not be empty")
	ErrTitleTooLong = errors.New("title exceeds 100 characters")
	ErrBadTime      = errors.New("time must be HH:MM")
	ErrWrongStep    = errors.New("input does not match the current step")
)

// Form accumulates the fields the user actually supplied. The *Set flags
// distinguish "entered empty" from "never entered", which drives
// request-body assembly.
type Form struct {
	Categories     map[int64]struct{}
	Title          string
	TitleSet       bool
	Description    string
	DescriptionSet bool
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
}

// Session is the per-conversation wizard state. It is exclusively owned by
// one conversation and discarded on completion or cancellation.
type Session struct {
	Flow Flow
	Step Step
	Form Form

	// Snapshot of available categories, fetched once per session.
	Categories []model.Category

	// Update flow only: the target task and its current deadline, used as
	// fallback when a deadline step is skipped.
	TaskID           string
	ExistingDeadline time.Time
}

// NewCreate starts a create-task session at the category step.
func NewCreate(categories []model.Category) *Session {
	return &Session{
		Flow:       FlowCreate,
		Step:       StepCategory,
		Form:       Form{Categories: make(map[int64]struct{})},
		Categories: categories,
	}
}

// NewUpdate starts an update-task session seeded with the target task.
func NewUpdate(task model.Task, categories []model.Category) *Session {
	return &Session{
		Flow:             FlowUpdate,
		Step:             StepCategory,
		Form:             Form{Categories: make(map[int64]struct{})},
		Categories:       categories,
		TaskID:           task.ID,
		ExistingDeadline: task.Deadline,
	}
}

// ToggleCategory flips membership of a category in the selection set and
// reports whether it is selected afterwards. Membership is a set, so
// repeated selections never duplicate.
func (s *Session) ToggleCategory(id int64) bool {
	if _, ok := s.Form.Categories[id]; ok {
		delete(s.Form.Categories, id)
		return false
	}
	s.Form.Categories[id] = struct{}{}
	return true
}

// Selected reports whether a category is currently chosen.
func (s *Session) Selected(id int64) bool {
	_, ok := s.Form.Categories[id]
	return ok
}

// Next advances from the category step. Zero selections are permitted.
func (s *Session) Next() error {
	if s.Step != StepCategory {
		return ErrWrongStep
	}
	s.Step = StepTitle
	return nil
}

// CanSkip reports whether the current step offers a skip action. The
// create flow only skips the description; the update flow skips every
// field step. The asymmetry matches the product's dialogs.
func (s *Session) CanSkip() bool {
	if s.Flow == FlowUpdate {
		switch s.Step {
		case StepTitle, StepDescription, StepDeadlineDate, StepDeadlineTime:
			return true
		}
		return false
	}
	return s.Step == StepDescription
}

// Skip advances without storing a value for the current step.
func (s *Session) Skip() error {
	if !s.CanSkip() {
		return ErrWrongStep
	}
	s.Step++
	return nil
}

// EnterTitle validates and stores the title. On failure the wizard stays
// on the title step.
func (s *Session) EnterTitle(text string) error {
	if s.Step != StepTitle {
		return ErrWrongStep
	}
	if err := validateTitle(text); err != nil {
		return err
	}
	s.Form.Title = text
	s.Form.TitleSet = true
	s.Step = StepDescription
	return nil
}

// EnterDescription stores the description; no validation applies.
func (s *Session) EnterDescription(text string) error {
	if s.Step != StepDescription {
		return ErrWrongStep
	}
	s.Form.Description = text
	s.Form.DescriptionSet = true
	s.Step = StepDeadlineDate
	return nil
}

// PickDate stores the chosen deadline date.
func (s *Session) PickDate(date time.Time) error {
	if s.Step != StepDeadlineDate {
		return ErrWrongStep
	}
	s.Form.Date = date.Format("2006-01-02")
	s.Step = StepDeadlineTime
	return nil
}

// EnterTime validates and stores the deadline time. On failure the wizard
// stays on the time step.
func (s *Session) EnterTime(text string) error {
	if s.Step != StepDeadlineTime {
		return ErrWrongStep
	}
	if err := validateTime(text); err != nil {
		return err
	}
	s.Form.Time = text
	s.Step = StepDone
	return nil
}

func validateTitle(text string) error {
	if text == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(text) > maxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

func validateTime(text string) error {
	if _, err := time.Parse("15:04", text); err != nil {
		return ErrBadTime
	}
	return nil
}

// RequestBody assembles the payload for the remote call. Only fields the
// user supplied are included. A deadline is emitted only when both the
// date and time components are present; on the update flow a missing
// component falls back to the task's existing deadline.
func (s *Session) RequestBody() map[string]any {
	body := make(map[string]any)

	if len(s.Form.Categories) > 0 {
		ids := make([]int64, 0, len(s.Form.Categories))
		for id := range s.Form.Categories {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		body["categories"] = ids
	}

	if s.Form.TitleSet {
		body["title"] = s.Form.Title
	}
	if s.Form.DescriptionSet {
		body["description"] = s.Form.Description
	}

	date, clock := s.Form.Date, s.Form.Time
	if s.Flow == FlowUpdate && (date != "" || clock != "") && !s.ExistingDeadline.IsZero() {
		if date == "" {
			date = s.ExistingDeadline.Format("2006-01-02")
		}
		if clock == "" {
			clock = s.ExistingDeadline.Format("15:04")
		}
	}
	if date != "" && clock != "" {
		body["deadline"] = date + "T" + clock + ":00.000Z"
	}

	return body
}
