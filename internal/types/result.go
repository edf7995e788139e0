package types

// Result is the outcome envelope every fallible operation in the core
// returns. Collaborator failures are carried as a status code plus message
// instead of an error value, so no error ever crosses a component boundary.
type Result struct {
	StatusCode   int    `json:"statusCode"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r Result) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Success returns a successful Result with status 200.
func Success() Result {
	return Result{StatusCode: 200}
}

// SuccessWithCode returns a successful Result with an explicit 2xx code.
func SuccessWithCode(statusCode int) Result {
	return Result{StatusCode: statusCode}
}

// Failure returns a failed Result carrying the given code and message.
func Failure(statusCode int, errorMessage string) Result {
	return Result{StatusCode: statusCode, ErrorMessage: errorMessage}
}

// ResultOf is the typed variant of Result. Value is only meaningful when
// IsSuccess reports true.
type ResultOf[T any] struct {
	Result
	Value T `json:"value,omitempty"`
}

// SuccessOf returns a successful ResultOf wrapping value with status 200.
func SuccessOf[T any](value T) ResultOf[T] {
	return ResultOf[T]{Result: Result{StatusCode: 200}, Value: value}
}

// FailureOf returns a failed ResultOf with the zero payload.
func FailureOf[T any](statusCode int, errorMessage string) ResultOf[T] {
	return ResultOf[T]{Result: Result{StatusCode: statusCode, ErrorMessage: errorMessage}}
}

// FailureFrom copies the status code and message of another outcome into a
// failed ResultOf. Used when a collaborator failure must propagate verbatim.
func FailureFrom[T any](r Result) ResultOf[T] {
	return ResultOf[T]{Result: r}
}
