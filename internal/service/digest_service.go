package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// DigestService builds the daily today-tasks summary from the remote
// service. It walks every page so the digest is complete even past the
// list page size.
type DigestService struct {
	tasks *repository.TaskRepository
	loc   *time.Location
}

func NewDigestService(tasks *repository.TaskRepository, loc *time.Location) *DigestService {
	if loc == nil {
		loc = time.UTC
	}
	return &DigestService{tasks: tasks, loc: loc}
}

func (s *DigestService) TodayDigest(ctx context.Context, user model.User) (string, error) {
	var all []model.Task
	for page := 1; ; page++ {
		tasks, hasNext, _, err := s.tasks.TodayTasks(ctx, user, page)
		if err != nil {
			return "", fmt.Errorf("today tasks page %d: %w", page, err)
		}
		all = append(all, tasks...)
		if !hasNext {
			break
		}
	}

	now := time.Now().In(s.loc)

	var b strings.Builder
	b.WriteString("📋 <b>Задачи на сегодня</b>\n")
	b.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	if len(all) == 0 {
		b.WriteString("— на сегодня задач нет")
		return b.String(), nil
	}

	for _, task := range all {
		deadline := task.Deadline.In(s.loc)
		icon := "🟢"
		if task.Status == model.StatusDone {
			icon = "✅"
		} else if now.After(deadline) {
			icon = "⚠️"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> — до %s\n",
			icon, html.EscapeString(strings.TrimSpace(task.Title)), deadline.Format("15:04")))
	}

	return strings.TrimSpace(b.String()), nil
}
