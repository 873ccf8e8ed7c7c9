package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
)

var day0 = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recorder) Enqueue(_ context.Context, _, _ string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, v.(model.Event))
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	svc    *Service
	repo   *repository.Memory
	clock  *clock.Manual
	events *recorder
	seq    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := clock.NewManual(day0)
	repo := repository.NewMemory(c, zap.NewNop())
	rec := &recorder{}
	svc := NewService(repo, zap.NewExample().Named("test"), WithClock(c), WithEnqueuer(rec))
	return &fixture{svc: svc, repo: repo, clock: c, events: rec}
}

func (f *fixture) item(t *testing.T, copies int) model.Item {
	t.Helper()
	f.seq++
	item, err := f.svc.CreateItem(context.Background(), model.CreateItemRequest{
		ISBN:        fmt.Sprintf("978-84-%06d", f.seq),
		Title:       "Cien años de soledad",
		Author:      "García Márquez",
		TotalCopies: copies,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) patron(t *testing.T, nationalID string) model.Patron {
	t.Helper()
	p, err := f.svc.CreatePatron(context.Background(), model.CreatePatronRequest{
		NationalID: nationalID,
		FirstName:  "Lucía",
		LastName:   "Paredes",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) loan(t *testing.T, item model.Item, patron model.Patron) model.Loan {
	t.Helper()
	loan, err := f.svc.CreateLoan(context.Background(), model.CreateLoanRequest{ItemID: item.ID, PatronID: patron.ID})
	require.NoError(t, err)
	return loan
}

func (f *fixture) available(t *testing.T, itemID int64) int {
	t.Helper()
	item, err := f.svc.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	return item.AvailableCopies
}

func TestService_CreateThenReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 2)
	patron := f.patron(t, "1001")

	loan, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{
		ItemID:   item.ID,
		PatronID: patron.ID,
		DueDate:  model.NewDate(day0.AddDate(0, 0, 7)),
		Notes:    "  first loan ",
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, loan.Status)
	require.Equal(t, clock.Date(day0), loan.LoanDate)
	require.Equal(t, 7, loan.DaysRemaining)
	require.Equal(t, "first loan", loan.Notes)
	require.Equal(t, 1, f.available(t, item.ID))

	returned, err := f.svc.ReturnLoan(ctx, loan.ID, model.ReturnLoanRequest{Notes: "good condition"})
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	require.Equal(t, clock.Date(day0), *returned.ReturnDate)
	require.Equal(t, 0, returned.DaysLate)
	require.Equal(t, 0, returned.DaysRemaining)
	require.Equal(t, "first loan | Return: good condition", returned.Notes)
	require.Equal(t, 2, f.available(t, item.ID))

	_, err = f.svc.ReturnLoan(ctx, loan.ID, model.ReturnLoanRequest{})
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	require.ErrorIs(t, err, errs.ErrState)
	require.Equal(t, 2, f.available(t, item.ID))

	require.Equal(t, []string{model.EventLoanCreated, model.EventLoanReturned}, f.events.types())
}

func TestService_CreateLoanDefaults(t *testing.T) {
	f := newFixture(t)
	loan := f.loan(t, f.item(t, 1), f.patron(t, "1002"))
	require.Equal(t, clock.Date(day0).AddDate(0, 0, 14), loan.DueDate)
	require.Equal(t, 14, loan.DaysRemaining)
}

func TestService_CreateLoanRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 5)
	empty := f.item(t, 0)
	patron := f.patron(t, "2001")
	inactive := f.patron(t, "2002")
	_, err := f.svc.DeactivatePatron(ctx, inactive.ID)
	require.NoError(t, err)
	f.loan(t, item, patron)

	tests := []struct {
		name     string
		req      model.CreateLoanRequest
		wantErr  error
		category error
	}{
		{
			name:     "unknown patron",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: 999},
			wantErr:  errs.ErrNotFound,
			category: errs.ErrNotFound,
		},
		{
			name:     "inactive patron",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: inactive.ID},
			wantErr:  errs.ErrPatronInactive,
			category: errs.ErrPolicyViolation,
		},
		{
			name:     "duplicate",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: patron.ID},
			wantErr:  errs.ErrDuplicateLoan,
			category: errs.ErrPolicyViolation,
		},
		{
			name:     "unknown item",
			req:      model.CreateLoanRequest{ItemID: 999, PatronID: patron.ID},
			wantErr:  errs.ErrNotFound,
			category: errs.ErrNotFound,
		},
		{
			name:     "out of stock",
			req:      model.CreateLoanRequest{ItemID: empty.ID, PatronID: patron.ID},
			wantErr:  errs.ErrOutOfStock,
			category: errs.ErrPolicyViolation,
		},
		{
			name:     "due today",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: patron.ID, DueDate: model.NewDate(day0)},
			wantErr:  errs.ErrInvalidDate,
			category: errs.ErrValidation,
		},
		{
			name:     "due in the past",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: patron.ID, DueDate: model.NewDate(day0.AddDate(0, 0, -1))},
			wantErr:  errs.ErrInvalidDate,
			category: errs.ErrValidation,
		},
		{
			name:     "unknown patron with a past due date",
			req:      model.CreateLoanRequest{ItemID: item.ID, PatronID: 999, DueDate: model.NewDate(day0.AddDate(0, 0, -1))},
			wantErr:  errs.ErrNotFound,
			category: errs.ErrNotFound,
		},
		{
			name:     "past due date on a fresh item",
			req:      model.CreateLoanRequest{ItemID: empty.ID, PatronID: patron.ID, DueDate: model.NewDate(day0.AddDate(0, 0, -3))},
			wantErr:  errs.ErrInvalidDate,
			category: errs.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateLoan(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.category)
		})
	}

	require.Equal(t, 4, f.available(t, item.ID))
	require.Equal(t, 0, f.available(t, empty.ID))
}

func TestService_LoanLimitBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patron := f.patron(t, "3001")

	var loans []model.Loan
	for i := 0; i < 3; i++ {
		loans = append(loans, f.loan(t, f.item(t, 1), patron))
	}
	fourth := f.item(t, 1)

	_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: fourth.ID, PatronID: patron.ID})
	require.ErrorIs(t, err, errs.ErrLoanLimit)
	require.Equal(t, 1, f.available(t, fourth.ID))

	ok, err := f.svc.CanBorrow(ctx, patron.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = f.svc.ReturnLoan(ctx, loans[0].ID, model.ReturnLoanRequest{})
	require.NoError(t, err)

	_, err = f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: fourth.ID, PatronID: patron.ID})
	require.NoError(t, err)
	n, err := f.svc.CountOpenLoans(ctx, patron.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestService_ConcurrentLastCopy(t *testing.T) {
	f := newFixture(t)
	item := f.item(t, 1)
	patrons := []model.Patron{f.patron(t, "4001"), f.patron(t, "4002")}

	errCh := make(chan error, len(patrons))
	var wg sync.WaitGroup
	for _, p := range patrons {
		wg.Add(1)
		go func(p model.Patron) {
			defer wg.Done()
			_, err := f.svc.CreateLoan(context.Background(), model.CreateLoanRequest{ItemID: item.ID, PatronID: p.ID})
			errCh <- err
		}(p)
	}
	wg.Wait()
	close(errCh)

	var ok, outOfStock int
	for err := range errCh {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, outOfStock)
	require.Equal(t, 0, f.available(t, item.ID))
}

func TestService_ConcurrentLimitBoundary(t *testing.T) {
	f := newFixture(t)
	patron := f.patron(t, "5001")
	f.loan(t, f.item(t, 1), patron)
	f.loan(t, f.item(t, 1), patron)
	targets := []model.Item{f.item(t, 1), f.item(t, 1)}

	errCh := make(chan error, len(targets))
	var wg sync.WaitGroup
	for _, it := range targets {
		wg.Add(1)
		go func(it model.Item) {
			defer wg.Done()
			_, err := f.svc.CreateLoan(context.Background(), model.CreateLoanRequest{ItemID: it.ID, PatronID: patron.ID})
			errCh <- err
		}(it)
	}
	wg.Wait()
	close(errCh)

	var ok, limited int
	for err := range errCh {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, errs.ErrLoanLimit)
		limited++
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, limited)

	n, err := f.svc.CountOpenLoans(context.Background(), patron.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestService_OverdueScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 2)
	patron := f.patron(t, "6001")

	loan, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{
		ItemID: item.ID, PatronID: patron.ID, DueDate: model.NewDate(day0.AddDate(0, 0, 14)),
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.available(t, item.ID))

	f.clock.Advance(20)

	n, err := f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := f.svc.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusOverdue, got.Status)
	require.True(t, got.Overdue)
	require.Equal(t, 6, got.DaysLate)
	require.Equal(t, -6, got.DaysRemaining)
	require.Equal(t, 1, f.available(t, item.ID))

	overdue, err := f.svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, "Lucía Paredes", overdue[0].PatronName)

	returned, err := f.svc.ReturnLoan(ctx, loan.ID, model.ReturnLoanRequest{Notes: "late return"})
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, returned.Status)
	require.Equal(t, 6, returned.DaysLate)
	require.Equal(t, "Return: late return", returned.Notes)
	require.Equal(t, 2, f.available(t, item.ID))

	assert.Contains(t, f.events.types(), model.EventLoansSwept)
}

func TestService_ExtendLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 1)
	loan := f.loan(t, item, f.patron(t, "7001"))

	f.clock.Advance(16)
	_, err := f.svc.SweepOverdue(ctx)
	require.NoError(t, err)

	_, err = f.svc.ExtendLoan(ctx, loan.ID, model.ExtendLoanRequest{DueDate: model.NewDate(f.clock.Now())})
	require.ErrorIs(t, err, errs.ErrInvalidDate)

	newDue := clock.Today(f.clock).AddDate(0, 0, 5)
	extended, err := f.svc.ExtendLoan(ctx, loan.ID, model.ExtendLoanRequest{DueDate: model.NewDate(newDue)})
	require.NoError(t, err)
	require.Equal(t, model.StatusActive, extended.Status)
	require.Equal(t, newDue, extended.DueDate)
	require.Equal(t, 5, extended.DaysRemaining)
	require.Equal(t, "Due date extended to "+newDue.Format(time.DateOnly), extended.Notes)
	require.Equal(t, 0, f.available(t, item.ID))

	_, err = f.svc.ReturnLoan(ctx, loan.ID, model.ReturnLoanRequest{})
	require.NoError(t, err)
	_, err = f.svc.ExtendLoan(ctx, loan.ID, model.ExtendLoanRequest{DueDate: model.NewDate(newDue)})
	require.ErrorIs(t, err, errs.ErrInvalidState)

	_, err = f.svc.ExtendLoan(ctx, 999, model.ExtendLoanRequest{DueDate: model.NewDate(newDue)})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ResizeCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 2)
	f.loan(t, item, f.patron(t, "8001"))
	f.loan(t, item, f.patron(t, "8002"))

	_, err := f.svc.ResizeCapacity(ctx, item.ID, 1)
	require.ErrorIs(t, err, errs.ErrCapacity)
	got, err := f.svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.TotalCopies)
	require.Equal(t, 0, got.AvailableCopies)

	resized, err := f.svc.ResizeCapacity(ctx, item.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, resized.TotalCopies)
	require.Equal(t, 2, resized.AvailableCopies)
}

func TestService_ReserveReleaseCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 1)

	ok, err := f.svc.ReleaseCopy(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = f.svc.ReserveCopy(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.svc.ReserveCopy(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = f.svc.ReserveCopy(ctx, 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

type failingInsertTx struct {
	repository.Tx
}

func (failingInsertTx) InsertLoan(context.Context, model.Loan) (model.Loan, error) {
	return model.Loan{}, errors.New("insert failed")
}

type failingInsertRepo struct {
	*repository.Memory
}

func (r failingInsertRepo) Tx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return r.Memory.Tx(ctx, func(tx repository.Tx) error {
		return fn(failingInsertTx{tx})
	})
}

func TestService_CreateLoanRollsBackReservation(t *testing.T) {
	f := newFixture(t)
	item := f.item(t, 1)
	patron := f.patron(t, "9001")

	svc := NewService(failingInsertRepo{f.repo}, zap.NewNop(), WithClock(f.clock))
	_, err := svc.CreateLoan(context.Background(), model.CreateLoanRequest{ItemID: item.ID, PatronID: patron.ID})
	require.EqualError(t, err, "insert failed")
	require.Equal(t, 1, f.available(t, item.ID))

	n, err := f.svc.CountOpenLoans(context.Background(), patron.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestService_PatronLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.item(t, 1)
	patron := f.patron(t, "10001")
	idle := f.patron(t, "10002")

	loan := f.loan(t, item, patron)

	_, err := f.svc.DeactivatePatron(ctx, patron.ID)
	require.ErrorIs(t, err, errs.ErrPatronHasLoans)

	_, err = f.svc.ReturnLoan(ctx, loan.ID, model.ReturnLoanRequest{})
	require.NoError(t, err)

	p, err := f.svc.DeactivatePatron(ctx, patron.ID)
	require.NoError(t, err)
	require.False(t, p.Active)
	active, err := f.svc.IsActive(ctx, patron.ID)
	require.NoError(t, err)
	require.False(t, active)

	err = f.svc.DeletePatron(ctx, patron.ID)
	require.ErrorIs(t, err, errs.ErrPatronHasHistory)

	p, err = f.svc.ActivatePatron(ctx, patron.ID)
	require.NoError(t, err)
	require.True(t, p.Active)

	require.NoError(t, f.svc.DeletePatron(ctx, idle.ID))
	_, err = f.svc.GetPatron(ctx, idle.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	sum, err := f.svc.PatronSummary(ctx, patron.ID)
	require.NoError(t, err)
	require.Equal(t, 0, sum.OpenLoans)
	require.Equal(t, 1, sum.LifetimeLoans)

	history, err := f.svc.PatronHistory(ctx, patron.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, item.Title, history[0].ItemTitle)

	_, err = f.svc.CreatePatron(ctx, model.CreatePatronRequest{NationalID: "10001", FirstName: "X", LastName: "Y"})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
}

func TestService_QueriesAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	patron := f.patron(t, "11001")
	other := f.patron(t, "11002")
	a, b, c := f.item(t, 3), f.item(t, 3), f.item(t, 3)

	_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: a.ID, PatronID: patron.ID, DueDate: model.NewDate(day0.AddDate(0, 0, 2))})
	require.NoError(t, err)
	_, err = f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: b.ID, PatronID: patron.ID, DueDate: model.NewDate(day0.AddDate(0, 0, 10))})
	require.NoError(t, err)
	late, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: c.ID, PatronID: other.ID, DueDate: model.NewDate(day0.AddDate(0, 0, 1))})
	require.NoError(t, err)

	f.clock.Advance(2)

	dueSoon, err := f.svc.ListDueSoon(ctx)
	require.NoError(t, err)
	require.Len(t, dueSoon, 1)
	require.Equal(t, a.ID, dueSoon[0].ItemID)

	byStatus, err := f.svc.ListByStatus(ctx, model.StatusOverdue)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, late.ID, byStatus[0].ID)

	byPatron, err := f.svc.ListByPatron(ctx, patron.ID)
	require.NoError(t, err)
	require.Len(t, byPatron, 2)
	require.True(t, byPatron[0].DueDate.Before(byPatron[1].DueDate))

	byItem, err := f.svc.ListByItem(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, byItem, 1)

	_, err = f.svc.ListLoans(ctx, model.LoanFilter{Status: "LOST"})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.ReturnLoan(ctx, late.ID, model.ReturnLoanRequest{})
	require.NoError(t, err)

	stats, err := f.svc.LoanStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.LoanStats{Open: 2, Overdue: 0, CreatedToday: 0, ReturnedToday: 1}, stats)

	d, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, stats, d.Loans)
	require.Equal(t, model.InventoryStats{Titles: 3, TotalCopies: 9, AvailableCopies: 7}, d.Inventory)
	require.Equal(t, model.PatronStats{Total: 2, Active: 2}, d.Patrons)
	require.Len(t, d.DueSoon, 1)
}

func TestService_ListPatronsWithOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, second, third := f.item(t, 3), f.item(t, 3), f.item(t, 3)
	late := f.patron(t, "8001")
	onTime := f.patron(t, "8002")
	returned := f.patron(t, "8003")

	f.loan(t, first, late)
	f.loan(t, second, late)
	back := f.loan(t, third, returned)

	none, err := f.svc.ListPatronsWithOverdue(ctx)
	require.NoError(t, err)
	require.Empty(t, none)

	f.clock.Advance(15)
	_, err = f.svc.ReturnLoan(ctx, back.ID, model.ReturnLoanRequest{})
	require.NoError(t, err)
	f.loan(t, first, onTime)

	patrons, err := f.svc.ListPatronsWithOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, patrons, 1)
	require.Equal(t, late.ID, patrons[0].ID)

	stats, err := f.svc.LoanStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Overdue)
}
