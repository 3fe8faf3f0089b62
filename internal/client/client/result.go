package client

// Result is the outcome of every API operation. When OK is true Data is
// meaningful; otherwise Error holds a displayable message and Err the
// classified cause.
type Result[T any] struct {
	OK    bool
	Data  T
	Error string
	Err   error
}

func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Fail builds a failed result whose message is derived from err.
func Fail[T any](err error) Result[T] {
	return Result[T]{Error: Message(err), Err: err}
}
