// Package todo defines the core domain model and the task store.
// The Repository interface allows swapping storage backends (SQLite, MySQL, in-memory)
// without changing any other layer.
package todo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Storage keys for the two persisted lists.
const (
	KeyTasks   = "tasks"
	KeyDeleted = "deletedTasks"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCorruptState    = errors.New("corrupt stored state")
)

// Task is the central domain object. ID lives only in memory; the stored
// shape is {text, completed}.
type Task struct {
	ID        string `json:"-"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func newTask(text string) Task {
	return Task{ID: uuid.NewString(), Text: text}
}

// Record is a key/value pair handed to Repository.Put.
type Record struct {
	Key   string
	Value []byte
}

// Repository is the storage contract. Put must apply all records or none.
type Repository interface {
	Get(key string) ([]byte, bool, error)
	Put(records ...Record) error
	Close() error
}

// EncodeTasks serializes a list in the persisted array-of-objects shape.
// A nil list encodes as [] rather than null.
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a persisted list and assigns fresh IDs.
func DecodeTasks(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].ID = uuid.NewString()
	}
	return tasks, nil
}

func loadList(repo Repository, key string) ([]Task, error) {
	data, ok, err := repo.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	tasks, err := DecodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorruptState, key, err)
	}
	return tasks, nil
}
