package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/model"
	"task-tracker/internal/wizard"
)

const (
	cbAllTasks     = "all_tasks"
	cbTodayTasks   = "today_tasks"
	cbActiveTasks  = "active_tasks"
	cbArchiveTasks = "archive_tasks"
	cbCreateTask   = "create_task"

	cbDetailsPrefix  = "details:"
	cbCompletePrefix = "complete_task:"
	cbUpdatePrefix   = "update_task:"
	cbDeletePrefix   = "delete_task:"

	cbWizCategoryPrefix = "wz_cat:"
	cbWizNext           = "wz_next"
	cbWizSkip           = "wz_skip"
	cbWizDayPrefix      = "wz_day:"
	cbWizMonthPrefix    = "wz_cal:"
	cbWizDone           = "wz_done"
	cbWizCancel         = "wz_cancel"
	cbNoop              = "noop"
)

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnAllTasks, cbAllTasks),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnToday, cbTodayTasks),
			tgbotapi.NewInlineKeyboardButtonData(btnCreate, cbCreateTask),
		),
	)
}

func taskTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnActive, cbActiveTasks),
			tgbotapi.NewInlineKeyboardButtonData(btnArchive, cbArchiveTasks),
		),
	)
}

// tasksListKeyboard builds one details button per task, the pagination row
// when neighbouring pages exist, and the trailing back row.
func tasksListKeyboard(tasks []model.Task, page int, hasNext, hasPrev bool, listPrefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, task := range tasks {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📄 Подробности о %s", task.Title),
				cbDetailsPrefix+task.ID,
			),
		))
	}

	var pagination []tgbotapi.InlineKeyboardButton
	if hasPrev {
		pagination = append(pagination, tgbotapi.NewInlineKeyboardButtonData(
			"⬅️ Назад", fmt.Sprintf("%s_%d", listPrefix, page-1),
		))
	}
	if hasNext {
		pagination = append(pagination, tgbotapi.NewInlineKeyboardButtonData(
			"Вперед ➡️", fmt.Sprintf("%s_%d", listPrefix, page+1),
		))
	}
	if len(pagination) > 0 {
		rows = append(rows, pagination)
	}

	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func taskDetailKeyboard(task model.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if task.Status != model.StatusDone {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Завершить задачу", cbCompletePrefix+task.ID),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать задачу", cbUpdatePrefix+task.ID),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать задачу", cbUpdatePrefix+task.ID),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Удалить задачу", cbDeletePrefix+task.ID),
		),
		backRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow())
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBack, cbAllTasks),
	)
}

// categoryKeyboard renders the multi-select, two categories per row, with
// a checkmark on selected entries and the Next row below.
func categoryKeyboard(sess *wizard.Session) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, category := range sess.Categories {
		label := category.Name
		if sess.Selected(category.ID) {
			label = "✓ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("%s%d", cbWizCategoryPrefix, category.ID),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnNext, cbWizNext),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnSkip, cbWizSkip),
		),
	)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnDone, cbWizDone),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnCancel, cbWizCancel),
		),
	)
}
