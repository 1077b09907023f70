package partner

import "fmt"

// onlyElement enforces the single-result invariant: partner list responses
// addressed by a unique key are transported as arrays but must hold exactly
// one element. Array position is never meaningful; zero or several elements
// is a defect, not something to coerce.
func onlyElement[T any](items []T) (T, error) {
	var zero T
	switch len(items) {
	case 0:
		return zero, ErrEmptyResult
	case 1:
		return items[0], nil
	default:
		return zero, fmt.Errorf("%w: got %d records", ErrAmbiguousResult, len(items))
	}
}
