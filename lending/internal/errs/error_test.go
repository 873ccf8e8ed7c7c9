package errs_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
)

func TestCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err      error
		category error
	}{
		{errs.ErrPatronInactive, errs.ErrPolicyViolation},
		{errs.ErrLoanLimit, errs.ErrPolicyViolation},
		{errs.ErrDuplicateLoan, errs.ErrPolicyViolation},
		{errs.ErrOutOfStock, errs.ErrPolicyViolation},
		{errs.ErrCapacity, errs.ErrPolicyViolation},
		{errs.ErrAlreadyReturned, errs.ErrState},
		{errs.ErrInvalidState, errs.ErrState},
		{errs.ErrInvalidDate, errs.ErrValidation},
	}
	categories := []error{errs.ErrNotFound, errs.ErrPolicyViolation, errs.ErrState, errs.ErrValidation}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			wrapped := errors.Wrapf(tt.err, "loan %d", 42)
			require.ErrorIs(t, wrapped, tt.err)
			for _, c := range categories {
				if c == tt.category {
					require.ErrorIs(t, wrapped, c)
				} else {
					require.NotErrorIs(t, wrapped, c)
				}
			}
		})
	}
	require.False(t, errors.Is(errs.ErrLoanLimit, errs.ErrOutOfStock))
}

func TestNewValidationErrorResponse(t *testing.T) {
	t.Parallel()
	type request struct {
		ISBN  string `json:"isbn" validate:"required,max=20"`
		Notes string `json:"notes" validate:"max=3"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})

	resp := errs.NewValidationErrorResponse(v.Struct(request{Notes: "too long"}))
	require.Equal(t, errs.ValidationErrorResponse{
		Message: "validation failed",
		Errors:  map[string]string{"isbn": "required", "notes": "max=3"},
	}, resp)

	resp = errs.NewValidationErrorResponse(errors.New("bad payload"))
	require.Equal(t, "bad payload", resp.Message)
	require.Empty(t, resp.Errors)
}
