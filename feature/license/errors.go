package license

import (
	"errors"
	"fmt"
)

// ErrEmptyDirectory aborts a backfill when the client directory has no entries.
// Running against an empty directory would report every row as unmatched.
var ErrEmptyDirectory = errors.New("client directory is empty")

// StorageError is a failed read or write against the license table.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
