package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"task-tracker/internal/model"
)

// tasksListText renders a page of tasks for the list views.
func tasksListText(tasks []model.Task, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("Ваши задачи:\n\n")

	for _, task := range tasks {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", escape(task.Title)))
		b.WriteString(fmt.Sprintf("<b>Создана:</b> %s\n", dateStrf(task.CreatedAt, loc)))
		b.WriteString(fmt.Sprintf("<b>Дедлайн:</b> %s\n\n", dateStrf(task.Deadline, loc)))
	}

	return strings.TrimSpace(b.String())
}

// taskDetailText renders the full task card.
func taskDetailText(task model.Task, loc *time.Location) string {
	description := "Нет описания"
	if task.Description != "" {
		description = escape(task.Description)
	}

	categories := "Нет категорий"
	if len(task.Categories) > 0 {
		names := make([]string, 0, len(task.Categories))
		for _, category := range task.Categories {
			names = append(names, escape(category.Name))
		}
		categories = strings.Join(names, ", ")
	}

	completedAt := "Не выполнена"
	if task.CompletedAt != nil {
		completedAt = dateStrf(*task.CompletedAt, loc)
	}

	return fmt.Sprintf(
		"📝 <b>Заголовок:</b> <b>%s</b>\n"+
			"📜 <b>Описание:</b> <b>%s</b>\n"+
			"📅 <b>Создана:</b> <b>%s</b>\n"+
			"⏰ <b>Дедлайн:</b> <b>%s</b>\n"+
			"🔖 <b>Статус:</b> <b>%s</b>\n"+
			"📂 <b>Категории:</b> <b>%s</b>\n"+
			"✅ <b>Дата выполнения:</b> <b>%s</b>",
		escape(task.Title),
		description,
		dateStrf(task.CreatedAt, loc),
		dateStrf(task.Deadline, loc),
		task.Status,
		categories,
		completedAt,
	)
}

func dateStrf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006, 15:04:05")
}

func escape(s string) string {
	return html.EscapeString(s)
}
