package todo

import (
	"errors"
	"fmt"
	"strings"
)

// FilterMode selects which derived view is rendered. It is display state
// only and never persisted.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterCompleted
	FilterIncomplete
	FilterDeleted
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filters lists every mode in menu order.
var Filters = []FilterMode{FilterAll, FilterCompleted, FilterIncomplete, FilterDeleted}

func (f FilterMode) String() string {
	switch f {
	case FilterCompleted:
		return "completed"
	case FilterIncomplete:
		return "incomplete"
	case FilterDeleted:
		return "deleted"
	default:
		return "all"
	}
}

// ParseFilter accepts the lower-case mode names; the empty string means all.
func ParseFilter(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed":
		return FilterCompleted, nil
	case "incomplete":
		return FilterIncomplete, nil
	case "deleted":
		return FilterDeleted, nil
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Entry is a visible task together with its position in the active list.
type Entry struct {
	Index int
	Task  Task
}

// Visible returns the active tasks shown under mode, in list order.
// FilterDeleted shows the deleted list instead, so it yields nothing here.
func Visible(tasks []Task, mode FilterMode) []Entry {
	if mode == FilterDeleted {
		return nil
	}
	out := make([]Entry, 0, len(tasks))
	for i, t := range tasks {
		switch {
		case mode == FilterCompleted && !t.Completed:
			continue
		case mode == FilterIncomplete && t.Completed:
			continue
		}
		out = append(out, Entry{Index: i, Task: t})
	}
	return out
}
