package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/repository"
)

const csvTimeLayout = "2006-01-02 15:04"

var csvHeader = []string{"ID", "Name", "Due Date", "Priority", "Category", "Created At", "Status"}

// ExportTasks writes the user's non-deleted tasks as CSV.
func (s *TaskService) ExportTasks(w io.Writer, userID uint64) error {
	tasks, _, err := s.taskRepo.List(userID, repository.TaskFilter{})
	if err != nil {
		return fmt.Errorf("failed to load tasks for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(csvTimeLayout)
		}
		row := []string{
			strconv.FormatUint(t.ID, 10),
			t.Name,
			due,
			t.Priority,
			t.Category,
			t.CreatedAt.Format(csvTimeLayout),
			string(t.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportTasks reads tasks from CSV and creates them for the user. Rows
// with fewer than five columns are skipped; a row with an empty name
// aborts the import. Returns the number of tasks created.
func (s *TaskService) ImportTasks(r io.Reader, userID uint64) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	imported := 0
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		if len(row) < 5 {
			continue
		}

		name, dueRaw, priority, category := row[1], row[2], row[3], row[4]

		var due *time.Time
		if dueRaw != "" {
			parsed, err := parseCSVTime(dueRaw)
			if err != nil {
				return imported, fmt.Errorf("row %d: invalid due date %q: %w", i+1, dueRaw, err)
			}
			due = &parsed
		}

		if _, err := s.CreateTask(CreateTaskInput{
			UserID:   userID,
			Name:     name,
			DueDate:  due,
			Priority: priority,
			Category: category,
		}); err != nil {
			return imported, fmt.Errorf("row %d: %w", i+1, err)
		}
		imported++
	}

	if imported > 0 {
		s.logActivity(userID, constants.ActivityTasksImported)
	}
	return imported, nil
}

func parseCSVTime(raw string) (time.Time, error) {
	for _, layout := range []string{csvTimeLayout, "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}
