package todo

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/MihkelHunter/mkTasks/internal/log"
)

// Service holds the active list, the deleted list and the selection of
// deleted tasks, and mirrors both lists to the repository on every change.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu        sync.Mutex
	tasks     []Task
	deleted   []Task
	selected  map[string]struct{}
	listeners []func()
}

// NewService loads both lists from repo. A missing key starts empty;
// undecodable data fails with ErrCorruptState.
func NewService(repo Repository) (*Service, error) {
	tasks, err := loadList(repo, KeyTasks)
	if err != nil {
		return nil, err
	}
	deleted, err := loadList(repo, KeyDeleted)
	if err != nil {
		return nil, err
	}
	s := &Service{
		repo:     repo,
		logger:   log.NewModuleLogger("todo", "service"),
		tasks:    tasks,
		deleted:  deleted,
		selected: make(map[string]struct{}),
	}
	s.logger.Debug("state loaded", "tasks", len(tasks), "deleted", len(deleted))
	return s, nil
}

// OnChange registers fn to run after every committed mutation.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add appends a new incomplete task. Blank text (after trimming) is ignored
// and reported as false; the stored text is left untrimmed. Invalid UTF-8
// is replaced with U+FFFD, as JSON encoding would, so memory holds exactly
// what is stored.
func (s *Service) Add(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	text = strings.ToValidUTF8(text, "\uFFFD")
	s.mu.Lock()
	next := append(slices.Clone(s.tasks), newTask(text))
	if err := s.persist(write{KeyTasks, next}); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.tasks = next
	s.mu.Unlock()

	s.logger.Debug("task added", "index", len(next)-1)
	s.notify()
	return true, nil
}

// ToggleComplete flips the completed flag of the active task at index.
func (s *Service) ToggleComplete(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.tasks) {
		s.mu.Unlock()
		return fmt.Errorf("toggle %d: %w", index, ErrIndexOutOfRange)
	}
	next := slices.Clone(s.tasks)
	next[index].Completed = !next[index].Completed
	if err := s.persist(write{KeyTasks, next}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks = next
	s.mu.Unlock()

	s.notify()
	return nil
}

// Delete moves the active task at index to the end of the deleted list.
func (s *Service) Delete(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.tasks) {
		s.mu.Unlock()
		return fmt.Errorf("delete %d: %w", index, ErrIndexOutOfRange)
	}
	t := s.tasks[index]
	nextDeleted := append(slices.Clone(s.deleted), t)
	nextTasks := slices.Delete(slices.Clone(s.tasks), index, index+1)
	if err := s.persist(write{KeyTasks, nextTasks}, write{KeyDeleted, nextDeleted}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks, s.deleted = nextTasks, nextDeleted
	s.mu.Unlock()

	s.logger.Debug("task deleted", "index", index)
	s.notify()
	return nil
}

// Restore moves the deleted task at index back to the end of the active
// list. Other selected tasks stay selected.
func (s *Service) Restore(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.deleted) {
		s.mu.Unlock()
		return fmt.Errorf("restore %d: %w", index, ErrIndexOutOfRange)
	}
	t := s.deleted[index]
	nextTasks := append(slices.Clone(s.tasks), t)
	nextDeleted := slices.Delete(slices.Clone(s.deleted), index, index+1)
	if err := s.persist(write{KeyTasks, nextTasks}, write{KeyDeleted, nextDeleted}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.tasks, s.deleted = nextTasks, nextDeleted
	delete(s.selected, t.ID)
	s.mu.Unlock()

	s.logger.Debug("task restored", "index", index)
	s.notify()
	return nil
}

// ToggleSelect adds or removes the deleted task at index from the selection.
// The selection is not persisted.
func (s *Service) ToggleSelect(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.deleted) {
		s.mu.Unlock()
		return fmt.Errorf("select %d: %w", index, ErrIndexOutOfRange)
	}
	id := s.deleted[index].ID
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteSelected permanently removes every selected deleted task and
// clears the selection.
func (s *Service) DeleteSelected() error {
	s.mu.Lock()
	if len(s.selected) == 0 {
		s.mu.Unlock()
		return nil
	}
	next := make([]Task, 0, len(s.deleted))
	for _, t := range s.deleted {
		if _, ok := s.selected[t.ID]; !ok {
			next = append(next, t)
		}
	}
	if err := s.persist(write{KeyDeleted, next}); err != nil {
		s.mu.Unlock()
		return err
	}
	removed := len(s.deleted) - len(next)
	s.deleted = next
	clear(s.selected)
	s.mu.Unlock()

	s.logger.Debug("selected tasks purged", "count", removed)
	s.notify()
	return nil
}

// Tasks returns a copy of the active list.
func (s *Service) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Deleted returns a copy of the deleted list.
func (s *Service) Deleted() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deleted)
}

// Selected returns the current deleted-list indices of the selected tasks,
// in ascending order.
func (s *Service) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var idx []int
	for i, t := range s.deleted {
		if _, ok := s.selected[t.ID]; ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// DeletedEntry is a deleted task with its index and selection mark.
type DeletedEntry struct {
	Index    int
	Task     Task
	Selected bool
}

// DeletedView returns the deleted list and its selection marks from one
// snapshot, so a concurrent Restore cannot shift a mark onto another task.
func (s *Service) DeletedView() []DeletedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DeletedEntry, len(s.deleted))
	for i, t := range s.deleted {
		_, ok := s.selected[t.ID]
		out[i] = DeletedEntry{Index: i, Task: t, Selected: ok}
	}
	return out
}

func (s *Service) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected) > 0
}

func (s *Service) Close() error {
	return s.repo.Close()
}

type write struct {
	key   string
	tasks []Task
}

// persist stores every list in one Put. Callers hold s.mu and commit in
// memory only after it succeeds.
func (s *Service) persist(writes ...write) error {
	records := make([]Record, 0, len(writes))
	for _, w := range writes {
		data, err := EncodeTasks(w.tasks)
		if err != nil {
			return fmt.Errorf("encode %s: %w", w.key, err)
		}
		records = append(records, Record{Key: w.key, Value: data})
	}
	if err := s.repo.Put(records...); err != nil {
		s.logger.Error("persist failed", "error", err)
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

func (s *Service) notify() {
	s.mu.Lock()
	fns := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
