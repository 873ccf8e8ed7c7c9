package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
)

// Every query sweeps first: overdue status is stored, not computed on read.

func (s *Service) ListLoans(ctx context.Context, f model.LoanFilter) ([]model.Loan, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, errors.Wrapf(errs.ErrInvalidArgument, "status %q", f.Status)
	}
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	loans, err := s.repo.ListLoans(ctx, f)
	if err != nil {
		return nil, err
	}
	today := s.today()
	for i := range loans {
		loans[i] = loans[i].Derive(today)
	}
	return loans, nil
}

func (s *Service) ListByStatus(ctx context.Context, status model.Status) ([]model.Loan, error) {
	return s.ListLoans(ctx, model.LoanFilter{Status: status})
}

func (s *Service) ListByPatron(ctx context.Context, patronID int64) ([]model.Loan, error) {
	return s.ListLoans(ctx, model.LoanFilter{PatronID: patronID})
}

func (s *Service) ListByItem(ctx context.Context, itemID int64) ([]model.Loan, error) {
	return s.ListLoans(ctx, model.LoanFilter{ItemID: itemID})
}

// ListLoanDetails is the reporting projection: loans joined with item and patron.
func (s *Service) ListLoanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	return s.loanDetails(ctx, f)
}

func (s *Service) loanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error) {
	details, err := s.repo.ListLoanDetails(ctx, f)
	if err != nil {
		return nil, err
	}
	today := s.today()
	for i := range details {
		details[i].Loan = details[i].Loan.Derive(today)
	}
	return details, nil
}

func (s *Service) dueSoonFilter() model.LoanFilter {
	from := s.today()
	to := from.AddDate(0, 0, s.policy.DueSoonDays)
	return model.LoanFilter{Status: model.StatusActive, DueFrom: &from, DueTo: &to}
}

// ListDueSoon lists active loans due between today and the policy window, soonest first.
func (s *Service) ListDueSoon(ctx context.Context) ([]model.LoanDetail, error) {
	return s.ListLoanDetails(ctx, s.dueSoonFilter())
}

func (s *Service) ListOverdue(ctx context.Context) ([]model.LoanDetail, error) {
	return s.ListLoanDetails(ctx, model.LoanFilter{Status: model.StatusOverdue})
}

func (s *Service) LoanStats(ctx context.Context) (model.LoanStats, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.LoanStats{}, err
	}
	return s.repo.LoanStats(ctx, s.today())
}

// Dashboard sweeps once and then gathers the statistics concurrently.
func (s *Service) Dashboard(ctx context.Context) (model.Dashboard, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.Dashboard{}, err
	}

	var d model.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.repo.LoanStats(gctx, s.today())
		d.Loans = st
		return err
	})
	g.Go(func() error {
		st, err := s.repo.InventoryStats(gctx)
		d.Inventory = st
		return err
	})
	g.Go(func() error {
		st, err := s.repo.PatronStats(gctx)
		d.Patrons = st
		return err
	})
	g.Go(func() error {
		due, err := s.loanDetails(gctx, s.dueSoonFilter())
		d.DueSoon = due
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}
	return d, nil
}
