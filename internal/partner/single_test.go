package partner

import (
	"errors"
	"testing"
)

func TestOnlyElement(t *testing.T) {
	got, err := onlyElement([]int{7})
	if err != nil {
		t.Fatalf("single element: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	if _, err := onlyElement([]int{}); !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected empty result error, got %v", err)
	}
	if _, err := onlyElement([]int{1, 2}); !errors.Is(err, ErrAmbiguousResult) {
		t.Fatalf("expected ambiguous result error, got %v", err)
	}
}
