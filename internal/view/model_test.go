package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/mkTasks/internal/store"
	"github.com/MihkelHunter/mkTasks/internal/todo"
)

func newModel(t *testing.T, texts ...string) *Model {
	t.Helper()
	svc, err := todo.NewService(store.NewMemory())
	require.NoError(t, err)
	m := NewModel(svc)
	for _, text := range texts {
		m.SetInput(text)
		ok, err := m.Submit()
		require.NoError(t, err)
		require.True(t, ok)
	}
	return m
}

func TestSubmit_ClearsInputOnlyWhenAccepted(t *testing.T) {
	m := newModel(t)

	m.SetInput("   ")
	ok, err := m.Submit()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "   ", m.Input(), "blank input stays in the field")
	assert.Empty(t, m.ActiveRows())

	m.SetInput("Buy milk")
	ok, err = m.Submit()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, m.Input())
	assert.Equal(t, []ActiveRow{{Index: 0, Text: "Buy milk"}}, m.ActiveRows())
}

func TestDefaults(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, todo.FilterAll, m.Filter())
	assert.False(t, m.MenuOpen())
	assert.False(t, m.ShowingDeleted())
	assert.False(t, m.ShowDeleteSelected())
}

func TestToggleMenu(t *testing.T) {
	m := newModel(t, "a")
	m.ToggleMenu()
	assert.True(t, m.MenuOpen())
	m.ToggleMenu()
	assert.False(t, m.MenuOpen())
	assert.Len(t, m.ActiveRows(), 1, "menu state has no data effect")
}

func TestFilteredRowsKeepSourceIndex(t *testing.T) {
	m := newModel(t, "a", "b", "c")
	require.NoError(t, m.ToggleComplete(1))
	require.NoError(t, m.ToggleComplete(2))

	m.SetFilter(todo.FilterCompleted)
	rows := m.ActiveRows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 2, rows[1].Index)

	// Acting on the second visible row hits the right task.
	require.NoError(t, m.ToggleComplete(rows[1].Index))
	assert.Equal(t, []ActiveRow{{Index: 1, Text: "b", Completed: true}}, m.ActiveRows())

	m.SetFilter(todo.FilterIncomplete)
	assert.Equal(t, []ActiveRow{
		{Index: 0, Text: "a"},
		{Index: 2, Text: "c"},
	}, m.ActiveRows())
}

func TestDeletedView(t *testing.T) {
	m := newModel(t, "a", "b", "c")
	require.NoError(t, m.Delete(0))
	require.NoError(t, m.Delete(0))

	m.SetFilter(todo.FilterDeleted)
	assert.True(t, m.ShowingDeleted())
	assert.Nil(t, m.ActiveRows())
	assert.False(t, m.ShowDeleteSelected())

	require.NoError(t, m.ToggleSelect(1))
	assert.True(t, m.ShowDeleteSelected())
	assert.Equal(t, []DeletedRow{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b", Selected: true},
	}, m.DeletedRows())

	require.NoError(t, m.Restore(0))
	assert.Equal(t, []DeletedRow{{Index: 0, Text: "b", Selected: true}}, m.DeletedRows())

	require.NoError(t, m.DeleteSelected())
	assert.Empty(t, m.DeletedRows())
	assert.False(t, m.ShowDeleteSelected())

	m.SetFilter(todo.FilterAll)
	assert.Equal(t, []ActiveRow{{Index: 0, Text: "c"}, {Index: 1, Text: "a"}}, m.ActiveRows())
}
