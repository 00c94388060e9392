package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tasknest/tasks-service/models"
)

// ErrCorruptStore reports a store whose content parses as JSON but whose
// top-level value is not a list. Only the delete path surfaces it; read
// paths collapse the same condition to an empty collection.
var ErrCorruptStore = errors.New("task store content is not a list")

// TaskStore persists the whole task collection to a single JSON file.
// Every operation rewrites the full file under an exclusive lock: an
// in-process mutex for request concurrency plus a file lock for other
// processes. Single-writer semantics, no transactions.
type TaskStore struct {
	mu   sync.Mutex
	flk  *flock.Flock
	path string
}

func NewTaskStore(path string) *TaskStore {
	return &TaskStore{
		path: path,
		flk:  flock.New(path + ".lock"),
	}
}

func (s *TaskStore) lock() error {
	s.mu.Lock()
	if err := s.flk.Lock(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to lock task store: %w", err)
	}
	return nil
}

func (s *TaskStore) unlock() {
	_ = s.flk.Unlock()
	s.mu.Unlock()
}

// loadLocked reads the store tolerantly: a missing file, empty content,
// unparseable content or a non-list top level all yield an empty
// collection. List elements that are not well-formed records are skipped.
func (s *TaskStore) loadLocked() []models.Task {
	tasks, _ := s.parseLocked(false)
	return tasks
}

// loadStrictLocked is the delete-path variant: content that parses but is
// not a list is a fatal ErrCorruptStore instead of an empty collection.
func (s *TaskStore) loadStrictLocked() ([]models.Task, error) {
	return s.parseLocked(true)
}

func (s *TaskStore) parseLocked(strict bool) ([]models.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}
	content := bytes.TrimSpace(b)
	if len(content) == 0 || !json.Valid(content) {
		return nil, nil
	}
	if content[0] != '[' {
		if strict {
			return nil, ErrCorruptStore
		}
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, nil
	}

	tasks := make([]models.Task, 0, len(raw))
	for _, item := range raw {
		element := bytes.TrimSpace(item)
		if len(element) == 0 || element[0] != '{' {
			continue
		}
		var t models.Task
		if err := json.Unmarshal(element, &t); err != nil {
			continue
		}
		if t.Priority.IsZero() {
			t.Priority = models.LevelPriority(models.PriorityMedium)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *TaskStore) saveLocked(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write task store: %w", err)
	}
	return nil
}

// Load returns every well-formed record in the store.
func (s *TaskStore) Load() ([]models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()
	return s.loadLocked(), nil
}

// Save replaces the entire stored collection.
func (s *TaskStore) Save(tasks []models.Task) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()
	return s.saveLocked(tasks)
}

// GetByID returns the first record with the given id, or nil.
func (s *TaskStore) GetByID(id string) (*models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()
	for _, t := range s.loadLocked() {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

// DeleteByID removes every record sharing the id, not just the first:
// duplicate ids are a supported pathological case. It reports whether
// anything was removed and leaves the file untouched when nothing was.
func (s *TaskStore) DeleteByID(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	if err := s.lock(); err != nil {
		return false, err
	}
	defer s.unlock()

	tasks, err := s.loadStrictLocked()
	if err != nil {
		return false, err
	}

	kept := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}
	if err := s.saveLocked(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Mutate runs fn over the loaded collection and persists its result,
// all under one scoped lock. When fn errors nothing is written.
func (s *TaskStore) Mutate(fn func(tasks []models.Task) ([]models.Task, error)) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	mutated, err := fn(s.loadLocked())
	if err != nil {
		return err
	}
	return s.saveLocked(mutated)
}

// Add appends a new record under the lenient profile: no uniqueness
// check, no title rules, past due dates allowed.
func (s *TaskStore) Add(tc models.TaskCreate) (*models.Task, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       tc.Title,
		Description: tc.Description,
		Priority:    models.LevelPriority(tc.Priority),
		DueDate:     tc.DueDate,
		Completed:   tc.Completed,
	}
	if tc.Category != nil {
		category := string(*tc.Category)
		t.Category = &category
	}

	tasks := append(s.loadLocked(), t)
	if err := s.saveLocked(tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites the record's fields from tc. Nil pointer fields are
// skipped; value fields, including Completed=false, always overwrite.
// Returns nil when no record has the id.
func (s *TaskStore) Update(id string, tc models.TaskCreate) (*models.Task, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	tasks := s.loadLocked()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		t.Title = tc.Title
		t.Priority = models.LevelPriority(tc.Priority)
		t.Completed = tc.Completed
		if tc.Description != nil {
			t.Description = tc.Description
		}
		if tc.Category != nil {
			category := string(*tc.Category)
			t.Category = &category
		}
		if tc.DueDate != nil {
			t.DueDate = tc.DueDate
		}
		updated := *t
		if err := s.saveLocked(tasks); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, nil
}
