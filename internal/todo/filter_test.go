package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input string
		want  FilterMode
	}{
		{"", FilterAll},
		{"all", FilterAll},
		{"Completed", FilterCompleted},
		{"incomplete", FilterIncomplete},
		{" deleted ", FilterDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}

	_, err := ParseFilter("done")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func mustParse(t *testing.T, s string) FilterMode {
	t.Helper()
	f, err := ParseFilter(s)
	require.NoError(t, err)
	return f
}

func TestVisible(t *testing.T) {
	tasks := []Task{
		{Text: "x", Completed: false},
		{Text: "y", Completed: true},
		{Text: "z", Completed: true},
	}

	all := Visible(tasks, FilterAll)
	assert.Len(t, all, 3)

	done := Visible(tasks, FilterCompleted)
	require.Len(t, done, 2)
	assert.Equal(t, Entry{Index: 1, Task: tasks[1]}, done[0])
	assert.Equal(t, Entry{Index: 2, Task: tasks[2]}, done[1])

	open := Visible(tasks, FilterIncomplete)
	require.Len(t, open, 1)
	assert.Equal(t, 0, open[0].Index)

	assert.Empty(t, Visible(tasks, FilterDeleted))
	assert.Equal(t, "x", tasks[0].Text, "filtering never mutates")
}
