package services

import (
	"fmt"

	"github.com/google/uuid"

	"tasknest/tasks-service/logging"
	"tasknest/tasks-service/models"
	"tasknest/tasks-service/storage"
)

// TaskService implements the endpoint-facing operations under the strict
// validation profile: required bounded title, integer priority, no past
// due dates on create, duplicate-title conflicts.
type TaskService struct {
	store    *storage.TaskStore
	notifier *Notifier
}

func NewTaskService(store *storage.TaskStore, notifier *Notifier) *TaskService {
	return &TaskService{store: store, notifier: notifier}
}

// CreateTask validates the payload, rejects duplicate titles, assigns a
// fresh id and persists the record with an initial Pending state.
func (s *TaskService) CreateTask(p *models.TaskPayload) (*models.TaskView, error) {
	if err := models.ValidateCreatePayload(p, models.Today()); err != nil {
		return nil, err
	}

	var created models.Task
	err := s.store.Mutate(func(tasks []models.Task) ([]models.Task, error) {
		for _, t := range tasks {
			if t.Title == *p.Title {
				return nil, models.ErrDuplicateTitle
			}
		}

		created = models.Task{
			ID:          uuid.NewString(),
			Title:       *p.Title,
			Description: p.Description,
			Category:    p.Tag,
			Completed:   false,
		}
		if p.Priority != nil {
			created.Priority = models.NumericPriority(*p.Priority)
		} else {
			created.Priority = models.LevelPriority(models.PriorityMedium)
		}
		if p.DueDate != nil {
			due, err := models.ParseDate(*p.DueDate)
			if err != nil {
				return nil, &models.ValidationError{Kind: models.KindFormat, Field: "due_date"}
			}
			created.DueDate = &due
		}
		return append(tasks, created), nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Created task %s with title %q", created.ID, created.Title)
	s.notifier.TaskCreated(created)

	view := models.ViewOf(created)
	return &view, nil
}

// GetAllTasks returns every stored record in its HTTP representation.
// The slice is never nil so the response envelope always carries a list.
func (s *TaskService) GetAllTasks() ([]models.TaskView, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	views := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, models.ViewOf(t))
	}
	return views, nil
}

// GetTaskByID returns one record, or ErrTaskNotFound.
func (s *TaskService) GetTaskByID(id string) (*models.TaskView, error) {
	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, models.ErrTaskNotFound
	}
	view := models.ViewOf(*t)
	return &view, nil
}

// UpdateTask applies a partial merge: every field the client provided
// overwrites the stored value, omitted or null fields stay untouched.
// Nothing is persisted when validation fails or the id is unknown.
func (s *TaskService) UpdateTask(id string, p *models.TaskPayload) (*models.TaskView, error) {
	if err := models.ValidateUpdatePayload(p); err != nil {
		return nil, err
	}

	var updated models.Task
	err := s.store.Mutate(func(tasks []models.Task) ([]models.Task, error) {
		for i := range tasks {
			if tasks[i].ID != id {
				continue
			}
			t := &tasks[i]
			if p.Title != nil {
				t.Title = *p.Title
			}
			if p.Description != nil {
				t.Description = p.Description
			}
			if p.Priority != nil {
				t.Priority = models.NumericPriority(*p.Priority)
			}
			if p.DueDate != nil {
				due, err := models.ParseDate(*p.DueDate)
				if err != nil {
					return nil, &models.ValidationError{Kind: models.KindFormat, Field: "due_date"}
				}
				t.DueDate = &due
			}
			if p.Tag != nil {
				t.Category = p.Tag
			}
			if p.Status != nil {
				t.Completed = models.TaskStatus(*p.Status) == models.StatusCompleted
			}
			updated = *t
			return tasks, nil
		}
		return nil, models.ErrTaskNotFound
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_UPDATED, Description: Updated task %s", updated.ID)
	s.notifier.TaskUpdated(updated)

	view := models.ViewOf(updated)
	return &view, nil
}

// DeleteTask removes every record with the id and reports whether any
// existed. A corrupt (non-list) store is surfaced, not swallowed.
func (s *TaskService) DeleteTask(id string) (bool, error) {
	removed, err := s.store.DeleteByID(id)
	if err != nil {
		return false, err
	}
	if removed {
		logging.Logger.Infof("Event ID: TASK_DELETED, Description: Deleted task %s", id)
		s.notifier.TaskDeleted(id)
	}
	return removed, nil
}
