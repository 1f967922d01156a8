package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
	"task-tracker/internal/wizard"
)

// Bot aggregates the Telegram API with the remote-service repositories.
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *repository.UserRepository
	categories  *repository.CategoryRepository
	tasks       *repository.TaskRepository
	subscribers *repository.SubscriberRepository
	digest      *service.DigestService
	loc         *time.Location
	log         *slog.Logger

	sessions map[int64]*wizard.Session
	mu       sync.Mutex
}

func New(
	token string,
	users *repository.UserRepository,
	categories *repository.CategoryRepository,
	tasks *repository.TaskRepository,
	subscribers *repository.SubscriberRepository,
	digest *service.DigestService,
	loc *time.Location,
	log *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info("bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       users,
		categories:  categories,
		tasks:       tasks,
		subscribers: subscribers,
		digest:      digest,
		loc:         loc,
		log:         log,
		sessions:    make(map[int64]*wizard.Session),
	}, nil
}

// Start begins polling updates until ctx is cancelled. Handler errors are
// logged per update and never restart the loop.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Error("handle callback", "err", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Error("handle message", "err", err)
			}
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			return b.handleStart(ctx, msg)
		}
		return b.sendText(msg.Chat.ID, msgUnknownInput, nil)
	}

	if sess := b.session(msg.From.ID); sess != nil {
		return b.handleWizardText(ctx, msg, sess)
	}

	return b.sendText(msg.Chat.ID, msgUnknownInput, nil)
}

// handleStart registers the user on first contact and shows the main menu.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user := userFrom(msg.From)

	text := msgWelcomeOldUser
	if _, err := b.users.ByID(ctx, user.UserID); err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return b.sendText(msg.Chat.ID, errorText(err), nil)
		}
		if _, err := b.users.Create(ctx, user); err != nil {
			return b.sendText(msg.Chat.ID, errorText(err), nil)
		}
		text = msgWelcomeNewUser
	}

	if _, err := b.subscribers.Upsert(ctx, msg.Chat.ID, user.UserID, user.FirstName); err != nil {
		b.log.Warn("record subscriber", "chat", msg.Chat.ID, "err", err)
	}

	b.log.Info("start", "user", user.UserID)
	keyboard := mainKeyboard()
	return b.sendText(msg.Chat.ID, text, &keyboard)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	data := cb.Data

	switch {
	case data == cbNoop:
		return b.ack(cb, "")
	case data == cbAllTasks:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		keyboard := taskTypeKeyboard()
		return b.sendText(cb.Message.Chat.ID, msgTaskTypeChoose, &keyboard)
	case data == cbCreateTask:
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		return b.startCreateWizard(ctx, cb)
	case strings.HasPrefix(data, cbTodayTasks):
		return b.handleTaskList(ctx, cb, cbTodayTasks, b.tasks.TodayTasks)
	case strings.HasPrefix(data, cbActiveTasks):
		return b.handleTaskList(ctx, cb, cbActiveTasks, b.tasks.ActiveTasks)
	case strings.HasPrefix(data, cbArchiveTasks):
		return b.handleTaskList(ctx, cb, cbArchiveTasks, b.tasks.ArchivedTasks)
	case strings.HasPrefix(data, cbDetailsPrefix):
		return b.handleDetails(ctx, cb, strings.TrimPrefix(data, cbDetailsPrefix))
	case strings.HasPrefix(data, cbCompletePrefix):
		return b.handleComplete(ctx, cb, strings.TrimPrefix(data, cbCompletePrefix))
	case strings.HasPrefix(data, cbUpdatePrefix):
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		return b.startUpdateWizard(ctx, cb, strings.TrimPrefix(data, cbUpdatePrefix))
	case strings.HasPrefix(data, cbDeletePrefix):
		return b.handleDelete(ctx, cb, strings.TrimPrefix(data, cbDeletePrefix))
	default:
		if sess := b.session(cb.From.ID); sess != nil {
			return b.handleWizardCallback(ctx, cb, sess)
		}
		return b.ack(cb, "")
	}
}

type listFunc func(ctx context.Context, user model.User, page int) ([]model.Task, bool, bool, error)

// handleTaskList renders one page of a task list, editing the message in
// place. An empty page surfaces as an alert with no item keyboard.
func (b *Bot) handleTaskList(ctx context.Context, cb *tgbotapi.CallbackQuery, listPrefix string, list listFunc) error {
	page := parseListPage(cb.Data, listPrefix)
	user := userFrom(cb.From)

	tasks, hasNext, hasPrev, err := list(ctx, user, page)
	if err != nil {
		if err := b.ack(cb, ""); err != nil {
			return err
		}
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	if len(tasks) == 0 {
		return b.alert(cb, msgNoTasks)
	}

	if err := b.ack(cb, ""); err != nil {
		return err
	}

	b.log.Info("list tasks", "user", user.UserID, "list", listPrefix, "page", page)

	text := tasksListText(tasks, b.loc)
	keyboard := tasksListKeyboard(tasks, page, hasNext, hasPrev, listPrefix)
	edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		// Editing fails when the page content is unchanged or the message
		// is not editable anymore; fall back to a fresh message.
		return b.sendHTML(cb.Message.Chat.ID, text, &keyboard)
	}
	return nil
}

func (b *Bot) handleDetails(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID string) error {
	if err := b.ack(cb, ""); err != nil {
		return err
	}

	user := userFrom(cb.From)
	task, err := b.tasks.Detail(ctx, user, taskID)
	if err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	keyboard := taskDetailKeyboard(task)
	return b.sendHTML(cb.Message.Chat.ID, taskDetailText(task, b.loc), &keyboard)
}

func (b *Bot) handleComplete(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID string) error {
	if err := b.ack(cb, ""); err != nil {
		return err
	}

	user := userFrom(cb.From)
	if err := b.tasks.Complete(ctx, user, taskID); err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	b.log.Info("task completed", "user", user.UserID, "task", taskID)
	keyboard := backKeyboard()
	return b.sendText(cb.Message.Chat.ID, msgTaskCompleted, &keyboard)
}

func (b *Bot) handleDelete(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID string) error {
	if err := b.ack(cb, ""); err != nil {
		return err
	}

	user := userFrom(cb.From)
	if err := b.tasks.Delete(ctx, user, taskID); err != nil {
		return b.sendText(cb.Message.Chat.ID, errorText(err), nil)
	}

	b.log.Info("task deleted", "user", user.UserID, "task", taskID)
	keyboard := backKeyboard()
	return b.sendText(cb.Message.Chat.ID, msgTaskDeleted, &keyboard)
}

// SendDailyDigests delivers a today-tasks digest to every known chat.
func (b *Bot) SendDailyDigests(ctx context.Context) error {
	subs, err := b.subscribers.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		user := model.User{UserID: sub.UserID, FirstName: sub.FirstName}
		text, err := b.digest.TodayDigest(ctx, user)
		if err != nil {
			b.log.Warn("build digest", "user", sub.UserID, "err", err)
			continue
		}
		if err := b.sendHTML(sub.ChatID, text, nil); err != nil {
			b.log.Warn("send digest", "chat", sub.ChatID, "err", err)
		}
	}
	return nil
}

func (b *Bot) session(userID int64) *wizard.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[userID]
}

func (b *Bot) setSession(userID int64, sess *wizard.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[userID] = sess
}

func (b *Bot) clearSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, userID)
}

func (b *Bot) ack(cb *tgbotapi.CallbackQuery, text string) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Warn("callback ack", "err", err)
	}
	return nil
}

func (b *Bot) alert(cb *tgbotapi.CallbackQuery, text string) error {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(cb.ID, text)); err != nil {
		return fmt.Errorf("callback alert: %w", err)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendHTML(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := b.api.Send(msg)
	return err
}

// parseListPage extracts the page number from callbacks like
// "today_tasks_3"; the bare prefix means page 1.
func parseListPage(data, listPrefix string) int {
	if data == listPrefix {
		return 1
	}
	raw := strings.TrimPrefix(data, listPrefix+"_")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func userFrom(from *tgbotapi.User) model.User {
	return model.User{
		UserID:    strconv.FormatInt(from.ID, 10),
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}
}
