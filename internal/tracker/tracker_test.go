package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/notify"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubTaskRepo serves a fixed due-task slice, or a fixed error.
type stubTaskRepo struct {
	due []models.Task
	err error
}

func (s *stubTaskRepo) Create(*models.Task) error                          { return nil }
func (s *stubTaskRepo) FindByID(uint64, uint64) (*models.Task, error)      { return nil, gorm.ErrRecordNotFound }
func (s *stubTaskRepo) FindAnyByID(uint64, uint64) (*models.Task, error)   { return nil, gorm.ErrRecordNotFound }
func (s *stubTaskRepo) Update(*models.Task) error                          { return nil }
func (s *stubTaskRepo) SoftDelete(uint64, uint64) error                    { return nil }
func (s *stubTaskRepo) CountByStatus(uint64, models.TaskStatus) (int64, error) { return 0, nil }
func (s *stubTaskRepo) List(uint64, repository.TaskFilter) ([]models.Task, int64, error) {
	return nil, 0, nil
}
func (s *stubTaskRepo) ListDue(_ context.Context, _ uint64, before time.Time) ([]models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Task
	for _, t := range s.due {
		if t.DueDate != nil && !t.DueDate.After(before) {
			out = append(out, t)
		}
	}
	return out, nil
}

// stubPrefRepo serves one preference value, or a missing-record error.
type stubPrefRepo struct {
	value string
	err   error
}

func (s *stubPrefRepo) Upsert(*models.Preference) error { return nil }
func (s *stubPrefRepo) ListByUser(uint64) ([]models.Preference, error) {
	return nil, nil
}
func (s *stubPrefRepo) Get(userID uint64, key string) (*models.Preference, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.value == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Preference{UserID: userID, Key: key, Value: s.value}, nil
}

// recordingNotifier captures every event; it can be told to fail.
type recordingNotifier struct {
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Notify(event notify.Event) error {
	n.events = append(n.events, event)
	return n.err
}

func newTestTracker(tasks *stubTaskRepo, prefs *stubPrefRepo, sink *recordingNotifier, now time.Time) *Tracker {
	tr := New(tasks, prefs, sink, 1, time.Minute, 24*time.Hour, 5*time.Second)
	tr.now = func() time.Time { return now }
	return tr
}

func dueAt(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestPollNotifiesEachDueTaskOnce(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 1)
	assert.Equal(t, uint64(1), sink.events[0].TaskID)
	assert.Equal(t, "pay rent", sink.events[0].Name)

	// Nothing changed: the second poll stays silent.
	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Len(t, sink.events, 1)
}

func TestPollReNotifiesAfterDueDateChange(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	task := models.Task{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen}
	tasks := &stubTaskRepo{due: []models.Task{task}}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 1)

	// Rescheduling makes a new (task, due date) pair.
	task.DueDate = dueAt("2025-03-01 20:00")
	tasks.due = []models.Task{task}

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 2)
	assert.Equal(t, *dueAt("2025-03-01 20:00"), sink.events[1].DueDate)
}

func TestPollSeverity(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "late", DueDate: dueAt("2025-03-01 09:00"), Status: models.TaskStatusOpen},
		{ID: 2, UserID: 1, Name: "upcoming", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 2)
	assert.Equal(t, notify.SeverityOverdue, sink.events[0].Severity)
	assert.Equal(t, notify.SeverityDueSoon, sink.events[1].Severity)
}

func TestPollSurvivesStoreError(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{err: errors.New("database is locked")}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	err := tr.pollOnce(context.Background())
	require.Error(t, err)
	assert.Empty(t, sink.events)

	// The store recovers; the next poll delivers normally.
	tasks.err = nil
	tasks.due = []models.Task{
		{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}
	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Len(t, sink.events, 1)
}

func TestPollHonorsDisabledNotifications(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{value: "false"}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Empty(t, sink.events)
}

func TestPollDefaultsToEnabledOnPreferenceError(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	prefs := &stubPrefRepo{err: errors.New("database is locked")}
	tr := newTestTracker(tasks, prefs, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Len(t, sink.events, 1)
}

func TestPollRecordsKeyEvenWhenDeliveryFails(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "pay rent", DueDate: dueAt("2025-03-01 18:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{err: errors.New("smtp: connection refused")}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 1)

	// Delivery was attempted once; the failure must not cause a repeat.
	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Len(t, sink.events, 1)
}

func TestPollNotifiesTaskDueExactlyAtWindowEdge(t *testing.T) {
	now := *dueAt("2025-03-01 11:59")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "at the edge", DueDate: dueAt("2025-03-01 12:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	tr := New(tasks, &stubPrefRepo{}, sink, 1, time.Minute, time.Minute, 5*time.Second)
	tr.now = func() time.Time { return now }

	require.NoError(t, tr.pollOnce(context.Background()))
	require.Len(t, sink.events, 1)
	assert.Equal(t, notify.SeverityDueSoon, sink.events[0].Severity)
}

func TestPollSkipsTasksBeyondWindow(t *testing.T) {
	now := *dueAt("2025-03-01 12:00")
	tasks := &stubTaskRepo{due: []models.Task{
		{ID: 1, UserID: 1, Name: "next month", DueDate: dueAt("2025-04-01 12:00"), Status: models.TaskStatusOpen},
	}}
	sink := &recordingNotifier{}
	tr := newTestTracker(tasks, &stubPrefRepo{}, sink, now)

	require.NoError(t, tr.pollOnce(context.Background()))
	assert.Empty(t, sink.events)
}

func TestManagerStartStop(t *testing.T) {
	factory := func(userID uint64) *Tracker {
		return newTestTracker(&stubTaskRepo{}, &stubPrefRepo{}, &recordingNotifier{}, time.Now())
	}
	m := NewManager(factory)

	m.Start(1)
	// Replacing the session stops the previous tracker first.
	m.Start(2)
	m.Stop()

	// Stop with nothing running is a no-op.
	m.Stop()
}
