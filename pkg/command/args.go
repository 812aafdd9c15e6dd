package command

import "strings"

// argShape is one accepted sequence of argument tokens and the value it selects.
type argShape[T any] struct {
	tokens []string
	value  T
}

// matchArgs returns the value of the first shape equal to args.
func matchArgs[T any](args []string, shapes []argShape[T]) (T, bool) {
	for _, shape := range shapes {
		if equalTokens(shape.tokens, args) {
			return shape.value, true
		}
	}

	var zero T

	return zero, false
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// shapeForms renders shapes for error messages and help, "" being the empty shape.
func shapeForms[T any](shapes []argShape[T]) []string {
	forms := make([]string, len(shapes))
	for i, shape := range shapes {
		forms[i] = strings.Join(shape.tokens, " ")
	}

	return forms
}

func invalidArguments(name string, args []string, allowed []string) *InvalidArgumentsError {
	return &InvalidArgumentsError{
		Command: name,
		Args:    append([]string(nil), args...),
		Allowed: allowed,
	}
}
