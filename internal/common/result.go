package common

// Result is the discriminated outcome handed to UI callers: either OK with a
// Value, or a failure Kind with a message safe to display.
type Result[T any] struct {
	OK      bool   `json:"ok"`
	Value   T      `json:"value,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// ResultOf folds a (value, error) pair into a Result.
func ResultOf[T any](v T, err error) Result[T] {
	if err == nil {
		return Result[T]{OK: true, Value: v}
	}
	kind := KindOf(err)
	msg := StorageMessage
	if kind != KindStorage {
		msg = err.Error()
	}
	return Result[T]{Kind: kind, Message: msg}
}

// Done is ResultOf for operations without a payload.
func Done(err error) Result[struct{}] {
	return ResultOf(struct{}{}, err)
}
