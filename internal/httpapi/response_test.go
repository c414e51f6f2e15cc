package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"expensed/internal/core"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error maps to 422",
			err:  &core.ValidationError{Field: "amount", Reason: "amount must be greater than zero"},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "wrapped validation error maps to 422",
			err:  errors.Join(errors.New("ctx"), &core.ValidationError{Field: "category", Reason: "category is required"}),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "not found maps to 404",
			err:  core.ErrNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "storage error maps to 500",
			err:  &core.StorageError{Op: "insert", Err: errors.New("disk full")},
			want: http.StatusInternalServerError,
		},
		{
			name: "unknown error maps to 500",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
