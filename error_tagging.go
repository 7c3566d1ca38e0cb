package settle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TaskMetaError exposes correlation metadata for an item failure.
type TaskMetaError interface {
	error
	Unwrap() error
	BatchID() (uuid.UUID, bool)
	TaskIndex() (int, bool)
}

type taskTaggedError struct {
	err   error
	batch uuid.UUID
	index int
}

func newTaskTaggedError(err error, batch uuid.UUID, index int) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, batch: batch, index: index}
}

func (e *taskTaggedError) Error() string { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error { return e.err }

func (e *taskTaggedError) BatchID() (uuid.UUID, bool) {
	if e.batch == uuid.Nil {
		return uuid.Nil, false
	}
	return e.batch, true
}

func (e *taskTaggedError) TaskIndex() (int, bool) { return e.index, true }

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "item(index=%d,batch=%s): %+v", e.index, e.batch, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractBatchID returns the batch ID from err if present.
func ExtractBatchID(err error) (uuid.UUID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.BatchID()
	}
	return uuid.Nil, false
}

// ExtractTaskIndex returns the input index of the failed item from err if present.
func ExtractTaskIndex(err error) (int, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskIndex()
	}
	return 0, false
}
