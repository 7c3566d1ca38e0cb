package settle

import "errors"

const Namespace = "settle"

var (
	ErrInvalidLimit  = errors.New(Namespace + ": limit must be greater than 0")
	ErrNotInvocable  = errors.New(Namespace + ": operation is not invocable")
	ErrNotAwaitable  = errors.New(Namespace + ": value is not an awaitable future")
	ErrNoStages      = errors.New(Namespace + ": pipe requires at least one stage")
	ErrStageInput    = errors.New(Namespace + ": stage input has unexpected type")
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrTaskCancelled = errors.New(Namespace + ": task execution cancelled")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")
)
