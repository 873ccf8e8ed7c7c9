package repository

import (
	"context"
	"time"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
)

// Reader is the read-only query surface, usable both inside and outside a transaction.
type Reader interface {
	GetItem(ctx context.Context, id int64) (model.Item, error)
	GetPatron(ctx context.Context, id int64) (model.Patron, error)
	GetLoan(ctx context.Context, id int64) (model.Loan, error)
	CountOpenLoans(ctx context.Context, patronID int64) (int, error)
	PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error)
	ListLoans(ctx context.Context, f model.LoanFilter) ([]model.Loan, error)
	ListLoanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error)
	LoanStats(ctx context.Context, today time.Time) (model.LoanStats, error)
	InventoryStats(ctx context.Context) (model.InventoryStats, error)
	PatronStats(ctx context.Context) (model.PatronStats, error)
	// ListPatronsWithOverdue lists every patron holding an OVERDUE loan, by id.
	ListPatronsWithOverdue(ctx context.Context) ([]model.Patron, error)
}

// Tx is one atomic unit of work. Nothing written through it is visible to
// others until the enclosing Repository.Tx callback returns nil; a non-nil
// return discards every write made through it.
type Tx interface {
	Reader

	// LockPatron reads the patron and holds it until commit, serialising
	// every operation that reasons about that patron's open loan set.
	LockPatron(ctx context.Context, id int64) (model.Patron, error)
	// LockLoan reads the loan and holds it until commit.
	LockLoan(ctx context.Context, id int64) (model.Loan, error)
	HasOpenLoan(ctx context.Context, patronID, itemID int64) (bool, error)

	// ReserveCopy decrements available copies only if at least one is free.
	ReserveCopy(ctx context.Context, itemID int64) (bool, error)
	// ReleaseCopy increments available copies only if below total copies.
	ReleaseCopy(ctx context.Context, itemID int64) (bool, error)
	// ResizeCapacity sets total copies and shifts available copies by the same delta.
	ResizeCapacity(ctx context.Context, itemID int64, newTotal int) (model.Item, error)

	CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error)
	CreatePatron(ctx context.Context, req model.CreatePatronRequest) (model.Patron, error)
	SetPatronActive(ctx context.Context, id int64, active bool) (model.Patron, error)
	DeletePatron(ctx context.Context, id int64) error

	InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	UpdateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	// MarkOverdue moves every ACTIVE loan due before today to OVERDUE.
	MarkOverdue(ctx context.Context, today time.Time) (int, error)
}

type Repository interface {
	Reader
	Tx(ctx context.Context, fn func(tx Tx) error) error
}
