package wizard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

func categories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Работа"},
		{ID: 2, Name: "Дом"},
		{ID: 3, Name: "Учеба"},
	}
}

func TestCreateFlowWalksAllSteps(t *testing.T) {
	sess := NewCreate(categories())
	require.Equal(t, StepCategory, sess.Step)

	sess.ToggleCategory(1)
	require.NoError(t, sess.Next())
	require.Equal(t, StepTitle, sess.Step)

	require.NoError(t, sess.EnterTitle("Купить продукты"))
	require.Equal(t, StepDescription, sess.Step)

	require.NoError(t, sess.EnterDescription("молоко и хлеб"))
	require.Equal(t, StepDeadlineDate, sess.Step)

	require.NoError(t, sess.PickDate(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, StepDeadlineTime, sess.Step)

	require.NoError(t, sess.EnterTime("18:30"))
	require.Equal(t, StepDone, sess.Step)

	body := sess.RequestBody()
	assert.Equal(t, []int64{1}, body["categories"])
	assert.Equal(t, "Купить продукты", body["title"])
	assert.Equal(t, "молоко и хлеб", body["description"])
	assert.Equal(t, "2025-09-15T18:30:00.000Z", body["deadline"])
}

func TestTitleValidation(t *testing.T) {
	tests := []struct {
		name  string
		title string
		err   error
	}{
		{"empty", "", ErrEmptyTitle},
		{"too long", strings.Repeat("я", 101), ErrTitleTooLong},
		{"exactly 100 runes", strings.Repeat("я", 100), nil},
		{"single char", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewCreate(nil)
			require.NoError(t, sess.Next())

			err := sess.EnterTitle(tt.title)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				// Failure keeps the wizard on the title step.
				assert.Equal(t, StepTitle, sess.Step)
				assert.False(t, sess.Form.TitleSet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StepDescription, sess.Step)
		})
	}
}

func TestTimeValidation(t *testing.T) {
	valid := []string{"00:00", "09:30", "12:00", "23:59"}
	invalid := []string{"", "24:00", "99:99", "12:60", "abc", "12-30", "1230"}

	for _, input := range valid {
		t.Run("valid "+input, func(t *testing.T) {
			sess := sessionAtTimeStep(t)
			require.NoError(t, sess.EnterTime(input))
			assert.Equal(t, StepDone, sess.Step)
		})
	}

	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			sess := sessionAtTimeStep(t)
			require.ErrorIs(t, sess.EnterTime(input), ErrBadTime)
			assert.Equal(t, StepDeadlineTime, sess.Step)
			// Previously entered fields survive the failure.
			assert.True(t, sess.Form.TitleSet)
			assert.NotEmpty(t, sess.Form.Date)
		})
	}
}

func sessionAtTimeStep(t *testing.T) *Session {
	t.Helper()
	sess := NewCreate(nil)
	require.NoError(t, sess.Next())
	require.NoError(t, sess.EnterTitle("задача"))
	require.NoError(t, sess.EnterDescription("описание"))
	require.NoError(t, sess.PickDate(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)))
	return sess
}

func TestToggleCategoryIsSetMembership(t *testing.T) {
	sess := NewCreate(categories())

	assert.True(t, sess.ToggleCategory(2))
	assert.True(t, sess.ToggleCategory(1))
	// Re-selecting never duplicates: toggling flips membership.
	assert.False(t, sess.ToggleCategory(2))
	assert.True(t, sess.ToggleCategory(2))
	assert.False(t, sess.ToggleCategory(2))

	require.NoError(t, sess.Next())
	body := sess.RequestBody()
	assert.Equal(t, []int64{1}, body["categories"])
}

func TestZeroCategoriesPermitted(t *testing.T) {
	sess := NewCreate(categories())
	require.NoError(t, sess.Next())
	assert.Equal(t, StepTitle, sess.Step)

	body := sess.RequestBody()
	_, ok := body["categories"]
	assert.False(t, ok)
}

func TestCreateBodyOmitsDeadlineWithoutBothComponents(t *testing.T) {
	onlyDate := &Session{Flow: FlowCreate, Form: Form{Date: "2025-09-15"}}
	_, ok := onlyDate.RequestBody()["deadline"]
	assert.False(t, ok)

	onlyTime := &Session{Flow: FlowCreate, Form: Form{Time: "10:00"}}
	_, ok = onlyTime.RequestBody()["deadline"]
	assert.False(t, ok)

	both := &Session{Flow: FlowCreate, Form: Form{Date: "2025-09-15", Time: "10:00"}}
	assert.Equal(t, "2025-09-15T10:00:00.000Z", both.RequestBody()["deadline"])
}

func TestCreateBodyOmitsUnenteredFields(t *testing.T) {
	sess := NewCreate(categories())
	require.NoError(t, sess.Next())
	require.NoError(t, sess.EnterTitle("только заголовок"))

	body := sess.RequestBody()
	assert.Equal(t, map[string]any{"title": "только заголовок"}, body)
}

func TestUpdateBodyDeadlineFallbacks(t *testing.T) {
	existing := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	task := model.Task{ID: "abc", Deadline: existing}

	t.Run("only time entered uses existing date", func(t *testing.T) {
		sess := NewUpdate(task, nil)
		sess.Form.Time = "18:00"
		assert.Equal(t, "2025-03-04T18:00:00.000Z", sess.RequestBody()["deadline"])
	})

	t.Run("only date entered uses existing time", func(t *testing.T) {
		sess := NewUpdate(task, nil)
		sess.Form.Date = "2025-05-01"
		assert.Equal(t, "2025-05-01T10:30:00.000Z", sess.RequestBody()["deadline"])
	})

	t.Run("neither entered emits no deadline", func(t *testing.T) {
		sess := NewUpdate(task, nil)
		_, ok := sess.RequestBody()["deadline"]
		assert.False(t, ok)
	})

	t.Run("no existing deadline and one component emits nothing", func(t *testing.T) {
		sess := NewUpdate(model.Task{ID: "abc"}, nil)
		sess.Form.Time = "18:00"
		_, ok := sess.RequestBody()["deadline"]
		assert.False(t, ok)
	})
}

func TestSkipAvailabilityMatchesFlow(t *testing.T) {
	create := NewCreate(nil)
	require.NoError(t, create.Next())
	assert.False(t, create.CanSkip(), "create flow has no skip on title")
	require.NoError(t, create.EnterTitle("з"))
	assert.True(t, create.CanSkip(), "create flow skips description")
	require.NoError(t, create.Skip())
	assert.False(t, create.CanSkip(), "create flow has no skip on date")

	update := NewUpdate(model.Task{ID: "1", Deadline: time.Now()}, nil)
	require.NoError(t, update.Next())
	for _, step := range []Step{StepTitle, StepDescription, StepDeadlineDate, StepDeadlineTime} {
		assert.Equal(t, step, update.Step)
		assert.True(t, update.CanSkip())
		require.NoError(t, update.Skip())
	}
	assert.Equal(t, StepDone, update.Step)
}

func TestSkipStoresNoValue(t *testing.T) {
	task := model.Task{ID: "1", Deadline: time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)}
	sess := NewUpdate(task, nil)
	require.NoError(t, sess.Next())
	for sess.CanSkip() {
		require.NoError(t, sess.Skip())
	}

	assert.Empty(t, sess.RequestBody())
}

func TestInputOnWrongStepRejected(t *testing.T) {
	sess := NewCreate(nil)
	assert.ErrorIs(t, sess.EnterTitle("рано"), ErrWrongStep)
	assert.ErrorIs(t, sess.EnterTime("10:00"), ErrWrongStep)
	assert.ErrorIs(t, sess.Skip(), ErrWrongStep)
}
