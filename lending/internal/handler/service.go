package handler

import (
	"context"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, id int64, req model.ReturnLoanRequest) (model.Loan, error)
	ExtendLoan(ctx context.Context, id int64, req model.ExtendLoanRequest) (model.Loan, error)
	SweepOverdue(ctx context.Context) (int, error)
	GetLoan(ctx context.Context, id int64) (model.Loan, error)

	ListLoans(ctx context.Context, f model.LoanFilter) ([]model.Loan, error)
	ListDueSoon(ctx context.Context) ([]model.LoanDetail, error)
	ListOverdue(ctx context.Context) ([]model.LoanDetail, error)
	LoanStats(ctx context.Context) (model.LoanStats, error)
	Dashboard(ctx context.Context) (model.Dashboard, error)

	CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	ResizeCapacity(ctx context.Context, itemID int64, newTotal int) (model.Item, error)

	CreatePatron(ctx context.Context, req model.CreatePatronRequest) (model.Patron, error)
	PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error)
	PatronHistory(ctx context.Context, id int64) ([]model.LoanDetail, error)
	ListPatronsWithOverdue(ctx context.Context) ([]model.Patron, error)
	ActivatePatron(ctx context.Context, id int64) (model.Patron, error)
	DeactivatePatron(ctx context.Context, id int64) (model.Patron, error)
	DeletePatron(ctx context.Context, id int64) error
}

var _ LendingService = (*service.Service)(nil)
