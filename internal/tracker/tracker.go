// Package tracker runs the background due-task poll loop. It reads through
// the task repository on a fixed interval, deduplicates tasks it has
// already announced, and pushes events to the configured notification sink.
// It never blocks interactive work and it never terminates on a transient
// store error.
package tracker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/notify"
	"github.com/hanamura/taskdesk/internal/repository"
	"gorm.io/gorm"
)

// Key identifies one notification. The due instant is part of the key, so
// editing a task's due date after it was announced produces a fresh key
// and the task is announced again.
type Key struct {
	TaskID uint64
	DueAt  int64
}

// Tracker polls for tasks due within the look-ahead window for a single
// session's user. The already-notified set is private, in-memory, and
// session-scoped: a restart clears it.
type Tracker struct {
	tasks    repository.TaskRepository
	prefs    repository.PreferenceRepository
	notifier notify.Notifier

	userID   uint64
	interval time.Duration
	window   time.Duration
	timeout  time.Duration

	now      func() time.Time
	notified map[Key]struct{}
}

func New(tasks repository.TaskRepository, prefs repository.PreferenceRepository, notifier notify.Notifier,
	userID uint64, interval, window, timeout time.Duration) *Tracker {
	return &Tracker{
		tasks:    tasks,
		prefs:    prefs,
		notifier: notifier,
		userID:   userID,
		interval: interval,
		window:   window,
		timeout:  timeout,
		now:      time.Now,
		notified: make(map[Key]struct{}),
	}
}

// Run polls until the context is cancelled. Shutdown is cooperative: the
// stop signal is only checked between ticks, never mid-query, and a
// cancelled tracker does not restart.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	log.Printf("Due-task tracker started for user %d (interval %s, window %s)", t.userID, t.interval, t.window)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Due-task tracker stopped for user %d", t.userID)
			return
		case <-ticker.C:
			pollCtx, cancel := context.WithTimeout(ctx, t.timeout)
			if err := t.pollOnce(pollCtx); err != nil {
				// Transient failure: skip this tick, retry on the next one.
				log.Printf("Due-task poll failed for user %d: %v", t.userID, err)
			}
			cancel()
		}
	}
}

// pollOnce scans for due tasks and emits one event per unseen
// (task, due date) pair. A key is recorded as soon as delivery is
// attempted, so a failing sink does not cause repeat notifications.
func (t *Tracker) pollOnce(ctx context.Context) error {
	if !t.notificationsEnabled() {
		return nil
	}

	now := t.now()
	tasks, err := t.tasks.ListDue(ctx, t.userID, now.Add(t.window))
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		key := Key{TaskID: task.ID, DueAt: task.DueDate.Unix()}
		if _, seen := t.notified[key]; seen {
			continue
		}

		event := notify.Event{
			TaskID:   task.ID,
			Name:     task.Name,
			DueDate:  *task.DueDate,
			Severity: severityFor(*task.DueDate, now),
		}
		if err := t.notifier.Notify(event); err != nil {
			log.Printf("Failed to deliver notification for task %d: %v", task.ID, err)
		}
		t.notified[key] = struct{}{}
	}

	return nil
}

// notificationsEnabled honors the user's enable_notifications preference.
// A missing preference means enabled; a store error during the read is
// treated like a missing preference rather than silencing the tracker.
func (t *Tracker) notificationsEnabled() bool {
	pref, err := t.prefs.Get(t.userID, constants.PrefEnableNotifications)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to read notification preference for user %d: %v", t.userID, err)
		}
		return true
	}
	return pref.Value != "false"
}

func severityFor(due, now time.Time) notify.Severity {
	if due.Before(now) {
		return notify.SeverityOverdue
	}
	return notify.SeverityDueSoon
}
