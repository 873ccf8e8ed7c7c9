package errs

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Category sentinels. Every ledger error matches exactly one of them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrPolicyViolation = errors.New("policy violation")
	ErrState           = errors.New("invalid loan state")
	ErrValidation      = errors.New("validation failed")
)

var (
	ErrPatronInactive   = newError(ErrPolicyViolation, "patron is inactive")
	ErrLoanLimit        = newError(ErrPolicyViolation, "open loan limit reached")
	ErrDuplicateLoan    = newError(ErrPolicyViolation, "patron already holds an open loan for this item")
	ErrOutOfStock       = newError(ErrPolicyViolation, "no copies available")
	ErrCapacity         = newError(ErrPolicyViolation, "total copies below copies on loan")
	ErrPatronHasLoans   = newError(ErrPolicyViolation, "patron holds open loans")
	ErrPatronHasHistory = newError(ErrPolicyViolation, "patron has loan history")
	ErrDuplicateKey     = newError(ErrPolicyViolation, "already exists")

	ErrAlreadyReturned = newError(ErrState, "loan already returned")
	ErrInvalidState    = newError(ErrState, "loan is not open")

	ErrInvalidDate     = newError(ErrValidation, "date must be after today")
	ErrInvalidArgument = newError(ErrValidation, "invalid argument")
)

type ledgerError struct {
	category error
	msg      string
}

func newError(category error, msg string) error {
	return &ledgerError{category: category, msg: msg}
}

func (e *ledgerError) Error() string { return e.msg }

func (e *ledgerError) Unwrap() error { return e.category }

// ValidationErrorResponse is the 400 body for a request that failed struct
// validation. Errors maps each failed field to the rule it broke.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func NewValidationErrorResponse(err error) ValidationErrorResponse {
	resp := ValidationErrorResponse{
		Message: ErrValidation.Error(),
		Errors:  make(map[string]string),
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		resp.Message = err.Error()
		return resp
	}
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		resp.Errors[fe.Field()] = rule
	}
	return resp
}
