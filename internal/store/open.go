package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MihkelHunter/mkTasks/internal/config"
	"github.com/MihkelHunter/mkTasks/internal/todo"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the backend named by cfg.Driver.
func Open(cfg config.StorageConfig) (todo.Repository, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		return NewSQLite(cfg.Path)
	case "mysql":
		return NewMySQL(cfg.DSN)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
