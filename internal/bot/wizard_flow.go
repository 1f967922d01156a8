package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/wizard"
)

// startCreateWizard opens a create-task session at the category step with
// a fresh category snapshot.
func (b *Bot) startCreateWizard(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user := userFrom(cb.From)
	categories, err := b.categories.All(ctx, user)
	if err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	sess := wizard.NewCreate(categories)
	b.setSession(cb.From.ID, sess)
	b.log.Info("wizard started", "user", user.UserID, "flow", "create")
	return b.promptStep(cb.Message.Chat.ID, sess)
}

// startUpdateWizard seeds an update session with the target task so
// skipped deadline steps can fall back to its current values.
func (b *Bot) startUpdateWizard(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID string) error {
	user := userFrom(cb.From)
	task, err := b.tasks.Detail(ctx, user, taskID)
	if err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}
	categories, err := b.categories.All(ctx, user)
	if err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	sess := wizard.NewUpdate(task, categories)
	b.setSession(cb.From.ID, sess)
	b.log.Info("wizard started", "user", user.UserID, "flow", "update", "task", taskID)
	return b.promptStep(cb.Message.Chat.ID, sess)
}

// promptStep sends the prompt and keyboard for the session's current step.
func (b *Bot) promptStep(chatID int64, sess *wizard.Session) error {
	switch sess.Step {
	case wizard.StepCategory:
		keyboard := categoryKeyboard(sess)
		return b.sendText(chatID, msgChooseCategories, &keyboard)
	case wizard.StepTitle:
		if sess.CanSkip() {
			keyboard := skipKeyboard()
			return b.sendText(chatID, msgEnterTitle, &keyboard)
		}
		return b.sendText(chatID, msgEnterTitle, nil)
	case wizard.StepDescription:
		keyboard := skipKeyboard()
		if sess.Flow == wizard.FlowUpdate {
			return b.sendText(chatID, msgEnterDescrUpdate, &keyboard)
		}
		return b.sendText(chatID, msgEnterDescription, &keyboard)
	case wizard.StepDeadlineDate:
		keyboard := calendarKeyboard(time.Now().In(b.loc))
		if sess.CanSkip() {
			keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, skipKeyboard().InlineKeyboard...)
		}
		return b.sendText(chatID, msgEnterDeadlineDate, &keyboard)
	case wizard.StepDeadlineTime:
		if sess.CanSkip() {
			keyboard := skipKeyboard()
			return b.sendText(chatID, msgEnterDeadlineTime, &keyboard)
		}
		return b.sendText(chatID, msgEnterDeadlineTime, nil)
	case wizard.StepDone:
		keyboard := confirmKeyboard()
		return b.sendText(chatID, msgConfirmRequest, &keyboard)
	default:
		return nil
	}
}

// handleWizardText feeds free-text input into the session. Validation
// failures are reported inline and keep the wizard on the current step.
func (b *Bot) handleWizardText(ctx context.Context, msg *tgbotapi.Message, sess *wizard.Session) error {
	text := strings.TrimSpace(msg.Text)

	switch sess.Step {
	case wizard.StepTitle:
		if err := sess.EnterTitle(text); err != nil {
			return b.sendText(msg.Chat.ID, errorText(err), nil)
		}
	case wizard.StepDescription:
		if err := sess.EnterDescription(text); err != nil {
			return b.sendText(msg.Chat.ID, errorText(err), nil)
		}
	case wizard.StepDeadlineTime:
		if err := sess.EnterTime(text); err != nil {
			return b.sendText(msg.Chat.ID, errorText(err), nil)
		}
	default:
		// Steps driven by buttons; ignore stray text.
		return nil
	}

	return b.promptStep(msg.Chat.ID, sess)
}

// handleWizardCallback routes wizard button presses.
func (b *Bot) handleWizardCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, sess *wizard.Session) error {
	data := cb.Data

	switch {
	case strings.HasPrefix(data, cbWizCategoryPrefix):
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(data, cbWizCategoryPrefix), 10, 64)
		if err != nil {
			return nil
		}
		sess.ToggleCategory(id)
		keyboard := categoryKeyboard(sess)
		edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, keyboard)
		if _, err := b.api.Send(edit); err != nil {
			b.log.Warn("refresh category keyboard", "err", err)
		}
		return nil

	case data == cbWizNext:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		if err := sess.Next(); err != nil {
			return nil
		}
		return b.promptStep(cb.Message.Chat.ID, sess)

	case data == cbWizSkip:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		if err := sess.Skip(); err != nil {
			return nil
		}
		return b.promptStep(cb.Message.Chat.ID, sess)

	case strings.HasPrefix(data, cbWizMonthPrefix):
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		month, err := time.ParseInLocation("2006-01", strings.TrimPrefix(data, cbWizMonthPrefix), b.loc)
		if err != nil {
			return nil
		}
		keyboard := calendarKeyboard(month)
		if sess.CanSkip() {
			keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, skipKeyboard().InlineKeyboard...)
		}
		edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, keyboard)
		if _, err := b.api.Send(edit); err != nil {
			b.log.Warn("refresh calendar", "err", err)
		}
		return nil

	case strings.HasPrefix(data, cbWizDayPrefix):
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		date, err := time.ParseInLocation("2006-01-02", strings.TrimPrefix(data, cbWizDayPrefix), b.loc)
		if err != nil {
			return nil
		}
		if err := sess.PickDate(date); err != nil {
			return nil
		}
		return b.promptStep(cb.Message.Chat.ID, sess)

	case data == cbWizDone:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		return b.submitWizard(ctx, cb, sess)

	case data == cbWizCancel:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		b.clearSession(cb.From.ID)
		keyboard := backKeyboard()
		return b.sendText(cb.Message.Chat.ID, msgWizardCanceled, &keyboard)

	default:
		return b.ack(cb, "")
	}
}

// submitWizard assembles the request body and performs the create or
// update call. The session is torn down regardless of the outcome.
func (b *Bot) submitWizard(ctx context.Context, cb *tgbotapi.CallbackQuery, sess *wizard.Session) error {
	defer b.clearSession(cb.From.ID)

	user := userFrom(cb.From)
	body := sess.RequestBody()

	var err error
	success := msgTaskCreated
	if sess.Flow == wizard.FlowUpdate {
		err = b.tasks.Update(ctx, user, body, sess.TaskID)
		success = msgTaskUpdated
	} else {
		err = b.tasks.Create(ctx, user, body)
	}
	if err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	b.log.Info("wizard submitted", "user", user.UserID, "flow", sess.Flow)
	keyboard := backKeyboard()
	return b.sendText(cb.Message.Chat.ID, success, &keyboard)
}
