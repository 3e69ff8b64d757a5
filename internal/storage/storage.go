// Package storage содержит реализации objects.Storage: в памяти, в файле,
// в PostgreSQL, в SQLite/libSQL, в Redis, а также кэширующую обёртку.
package storage

import (
	"errors"
	"fmt"
)

// ErrStorage - общий признак ошибки хранилища. Проверяется через errors.Is.
var ErrStorage = errors.New("storage error")

// Error описывает сбой операции хранилища.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет сопоставлять любую ошибку хранилища с ErrStorage.
func (e *Error) Is(target error) bool {
	return target == ErrStorage
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}
