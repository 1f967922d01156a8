package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayRow = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// calendarKeyboard builds an inline month grid for the deadline date step.
// Day buttons carry wz_day:YYYY-MM-DD, the header arrows navigate months.
func calendarKeyboard(month time.Time) tgbotapi.InlineKeyboardMarkup {
	year, mon := month.Year(), month.Month()
	first := time.Date(year, mon, 1, 0, 0, 0, 0, month.Location())
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("«", cbWizMonthPrefix+prev.Format("2006-01")),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %d", monthNames[mon-1], year), cbNoop,
			),
			tgbotapi.NewInlineKeyboardButtonData("»", cbWizMonthPrefix+next.Format("2006-01")),
		),
	}

	var header []tgbotapi.InlineKeyboardButton
	for _, day := range weekdayRow {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(day, cbNoop))
	}
	rows = append(rows, header)

	// Monday-first offset of the month's first day.
	offset := (int(first.Weekday()) + 6) % 7
	daysInMonth := next.AddDate(0, 0, -1).Day()

	var week []tgbotapi.InlineKeyboardButton
	for i := 0; i < offset; i++ {
		week = append(week, tgbotapi.NewInlineKeyboardButtonData(" ", cbNoop))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, mon, day, 0, 0, 0, 0, month.Location())
		week = append(week, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", day), cbWizDayPrefix+date.Format("2006-01-02"),
		))
		if len(week) == 7 {
			rows = append(rows, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, tgbotapi.NewInlineKeyboardButtonData(" ", cbNoop))
		}
		rows = append(rows, week)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
