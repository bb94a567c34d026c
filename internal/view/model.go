// Package view holds the presentation state shared by the web and desktop
// front ends: the add-task input, the filter mode and the filter menu flag.
package view

import (
	"sync"

	"github.com/MihkelHunter/mkTasks/internal/todo"
)

// ActiveRow is one visible task of the active list. Index addresses the
// task in the unfiltered list.
type ActiveRow struct {
	Index     int
	Text      string
	Completed bool
}

// DeletedRow is one task of the deleted list.
type DeletedRow struct {
	Index    int
	Text     string
	Selected bool
}

// Model is the presentation state over a todo.Service.
type Model struct {
	svc *todo.Service

	mu       sync.Mutex
	input    string
	filter   todo.FilterMode
	menuOpen bool
}

func NewModel(svc *todo.Service) *Model {
	return &Model{svc: svc, filter: todo.FilterAll}
}

func (m *Model) Service() *todo.Service { return m.svc }

func (m *Model) Input() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input
}

func (m *Model) SetInput(s string) {
	m.mu.Lock()
	m.input = s
	m.mu.Unlock()
}

// Submit adds the current input as a task. The input is cleared only when
// the task was accepted.
func (m *Model) Submit() (bool, error) {
	m.mu.Lock()
	text := m.input
	m.mu.Unlock()

	ok, err := m.svc.Add(text)
	if err != nil || !ok {
		return false, err
	}
	m.mu.Lock()
	if m.input == text {
		m.input = ""
	}
	m.mu.Unlock()
	return true, nil
}

func (m *Model) Filter() todo.FilterMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

func (m *Model) SetFilter(f todo.FilterMode) {
	m.mu.Lock()
	m.filter = f
	m.mu.Unlock()
}

func (m *Model) MenuOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.menuOpen
}

func (m *Model) ToggleMenu() {
	m.mu.Lock()
	m.menuOpen = !m.menuOpen
	m.mu.Unlock()
}

// ShowingDeleted reports whether the deleted list replaces the active list.
func (m *Model) ShowingDeleted() bool {
	return m.Filter() == todo.FilterDeleted
}

// ActiveRows returns the filtered active list, or nil while the deleted
// list is shown.
func (m *Model) ActiveRows() []ActiveRow {
	entries := todo.Visible(m.svc.Tasks(), m.Filter())
	if entries == nil {
		return nil
	}
	rows := make([]ActiveRow, len(entries))
	for i, e := range entries {
		rows[i] = ActiveRow{Index: e.Index, Text: e.Task.Text, Completed: e.Task.Completed}
	}
	return rows
}

// DeletedRows returns the deleted list with selection marks.
func (m *Model) DeletedRows() []DeletedRow {
	entries := m.svc.DeletedView()
	rows := make([]DeletedRow, len(entries))
	for i, e := range entries {
		rows[i] = DeletedRow{Index: e.Index, Text: e.Task.Text, Selected: e.Selected}
	}
	return rows
}

// ShowDeleteSelected reports whether the bulk delete control is offered.
func (m *Model) ShowDeleteSelected() bool {
	return m.svc.HasSelection()
}

func (m *Model) ToggleComplete(index int) error { return m.svc.ToggleComplete(index) }
func (m *Model) Delete(index int) error         { return m.svc.Delete(index) }
func (m *Model) Restore(index int) error        { return m.svc.Restore(index) }
func (m *Model) ToggleSelect(index int) error   { return m.svc.ToggleSelect(index) }
func (m *Model) DeleteSelected() error          { return m.svc.DeleteSelected() }
