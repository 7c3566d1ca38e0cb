package settle

// Outcome is the settled result of one unit of work: either a value (Err == nil)
// or an error. Combinators return one Outcome per input item, in input order.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Outcome carrying v.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{Value: v} }

// Fail returns a failed Outcome carrying err.
func Fail[T any](err error) Outcome[T] { return Outcome[T]{Err: err} }

// IsOk reports whether the outcome is a success.
func (o Outcome[T]) IsOk() bool { return o.Err == nil }

// Unpack returns the outcome as the conventional (value, error) pair.
func (o Outcome[T]) Unpack() (T, error) { return o.Value, o.Err }

// Values returns the values of all successful outcomes, preserving order.
func Values[T any](outcomes []Outcome[T]) []T {
	values := make([]T, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			values = append(values, o.Value)
		}
	}
	return values
}

// Errors returns the errors of all failed outcomes, preserving order.
func Errors[T any](outcomes []Outcome[T]) []error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
