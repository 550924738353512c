package spacedrep

import (
	"errors"
	"fmt"
)

// ErrInvalidItemKey is returned when an item maps to an empty key.
// Nothing is read or written when it is returned.
var ErrInvalidItemKey = errors.New("spacedrep: empty item key")

// StorageError reports that the backing store could not be read or
// written. The operation's in-memory result is still valid for the
// current session.
type StorageError struct {
	Op  string // read, decode, write or reset
	Key string // storage namespace
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("spacedrep: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// MalformedRecordError reports a stored entry that was discarded while
// loading. The item is treated as never practiced.
type MalformedRecordError struct {
	Item string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("spacedrep: malformed record %q: %v", e.Item, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// ReadFailed reports whether err is a StorageError from a failed read.
// Progress loaded alongside such an error is empty, not the stored
// history, and must not be written back.
func ReadFailed(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Op == "read"
}
