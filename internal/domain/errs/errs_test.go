package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestCategory(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "plain", err: errors.New("boom"), want: nil},
		{name: "validation", err: fmt.Errorf("%w: missing signer identity", ErrValidation), want: ErrValidation},
		{name: "not found", err: fmt.Errorf("%w: proposal not found", ErrNotFound), want: ErrNotFound},
		{name: "conflict before persistence", err: fmt.Errorf("%w: %w: signature exists", ErrConflict, ErrPersistence), want: ErrConflict},
		{name: "persistence", err: fmt.Errorf("%w: put item", ErrPersistence), want: ErrPersistence},
		{name: "forbidden", err: fmt.Errorf("%w: not owner", ErrForbidden), want: ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Category(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
