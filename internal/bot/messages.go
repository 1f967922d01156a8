package bot

import (
	"errors"

	"task-tracker/internal/repository"
	"task-tracker/internal/wizard"
)

const (
	msgWelcomeNewUser = "👋 Добро пожаловать! Я помогу следить за вашими задачами."
	msgWelcomeOldUser = "С возвращением! Выберите действие:"
	msgNoTasks        = "Задачи не найдены"
	msgTaskTypeChoose = "Какие задачи показать?"
	msgTaskCreated    = "Задача успешно создана!"
	msgTaskUpdated    = "Задача успешно обновлена!"
	msgTaskCompleted  = "Задача завершена!"
	msgTaskDeleted    = "Задача удалена!"
	msgWizardCanceled = "Диалог отменён."
	msgUnknownInput   = "Я не понял сообщение. Нажмите /start, чтобы открыть меню."

	msgChooseCategories  = "Выберите категории (можно несколько):"
	msgEnterTitle        = "Введите заголовок:"
	msgEnterDescription  = "Введите описание (или нажмите 'Пропустить'):"
	msgEnterDescrUpdate  = "Введите описание:"
	msgEnterDeadlineDate = "Введите дату дедлайна:"
	msgEnterDeadlineTime = "Введите время дедлайна (в формате ЧЧ:ММ):"
	msgConfirmRequest    = "Ваш запрос сформирован. Нажмите 'Готово' для завершения."

	msgGenericError = "Произошла непредвиденная ошибка во время работы приложения"
)

const (
	btnNext     = "Далее"
	btnSkip     = "Пропустить"
	btnDone     = "Готово"
	btnCancel   = "Отмена"
	btnAllTasks = "📝 Посмотреть мои задачи"
	btnToday    = "📅 Задачи на сегодня"
	btnCreate   = "➕ Создать новую задачу"
	btnActive   = "📋 Активные"
	btnArchive  = "📁 Завершенные"
	btnBack     = "🔙 Назад к списку задач"
)

// errorText maps domain and validation errors to their user-facing
// Russian messages. Anything unmapped gets the generic notice.
func errorText(err error) string {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		return "Задача не найдена!"
	case errors.Is(err, repository.ErrTaskAlreadyDone):
		return "Задача уже завершена"
	case errors.Is(err, repository.ErrTaskAnotherAuthor):
		return "Задача создана другим пользователем"
	case errors.Is(err, repository.ErrTaskAlreadyExists):
		return "Такая задача уже существует"
	case errors.Is(err, repository.ErrIncorrectDeadline):
		return "Дедлайн не может быть раньше текущего дня"
	case errors.Is(err, repository.ErrUserNotFound):
		return "Пользователь не найден!"
	case errors.Is(err, wizard.ErrEmptyTitle):
		return "Заголовок не может быть пустым."
	case errors.Is(err, wizard.ErrTitleTooLong):
		return "Заголовок слишком длинный (максимум 100 символов)."
	case errors.Is(err, wizard.ErrBadTime):
		return "Некорректный формат времени. Введите время в формате ЧЧ:ММ."
	default:
		return msgGenericError
	}
}
