package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
)

func (s *Service) CreatePatron(ctx context.Context, req model.CreatePatronRequest) (model.Patron, error) {
	var p model.Patron
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		p, err = tx.CreatePatron(ctx, req)
		return err
	})
	return p, err
}

func (s *Service) GetPatron(ctx context.Context, id int64) (model.Patron, error) {
	return s.repo.GetPatron(ctx, id)
}

func (s *Service) IsActive(ctx context.Context, id int64) (bool, error) {
	p, err := s.repo.GetPatron(ctx, id)
	if err != nil {
		return false, err
	}
	return p.Active, nil
}

func (s *Service) CountOpenLoans(ctx context.Context, patronID int64) (int, error) {
	if _, err := s.repo.GetPatron(ctx, patronID); err != nil {
		return 0, err
	}
	return s.repo.CountOpenLoans(ctx, patronID)
}

// CanBorrow reports whether the patron would currently pass the patron-side
// checks of CreateLoan.
func (s *Service) CanBorrow(ctx context.Context, patronID int64) (bool, error) {
	p, err := s.repo.GetPatron(ctx, patronID)
	if err != nil {
		return false, err
	}
	if !p.Active {
		return false, nil
	}
	n, err := s.repo.CountOpenLoans(ctx, patronID)
	if err != nil {
		return false, err
	}
	return n < s.policy.MaxOpenLoans, nil
}

func (s *Service) ActivatePatron(ctx context.Context, id int64) (model.Patron, error) {
	var p model.Patron
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		p, err = tx.SetPatronActive(ctx, id, true)
		return err
	})
	return p, err
}

// DeactivatePatron is rejected while the patron still holds open loans. The
// patron row is locked so no loan can be created concurrently.
func (s *Service) DeactivatePatron(ctx context.Context, id int64) (model.Patron, error) {
	var p model.Patron
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		if _, err := tx.LockPatron(ctx, id); err != nil {
			return err
		}
		open, err := tx.CountOpenLoans(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errors.Wrapf(errs.ErrPatronHasLoans, "patron %d holds %d open loans", id, open)
		}
		p, err = tx.SetPatronActive(ctx, id, false)
		return err
	})
	if err != nil {
		return model.Patron{}, err
	}
	s.log.Info("patron deactivated", zap.Int64("patron_id", id))
	return p, nil
}

// DeletePatron removes a patron that has never borrowed anything.
func (s *Service) DeletePatron(ctx context.Context, id int64) error {
	return s.repo.Tx(ctx, func(tx repository.Tx) error {
		if _, err := tx.LockPatron(ctx, id); err != nil {
			return err
		}
		return tx.DeletePatron(ctx, id)
	})
}

func (s *Service) PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.PatronSummary{}, err
	}
	return s.repo.PatronSummary(ctx, id)
}

// ListPatronsWithOverdue lists patrons holding at least one overdue loan.
func (s *Service) ListPatronsWithOverdue(ctx context.Context) ([]model.Patron, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListPatronsWithOverdue(ctx)
}

// PatronHistory lists every loan of the patron, newest first.
func (s *Service) PatronHistory(ctx context.Context, id int64) ([]model.LoanDetail, error) {
	if _, err := s.repo.GetPatron(ctx, id); err != nil {
		return nil, err
	}
	return s.ListLoanDetails(ctx, model.LoanFilter{PatronID: id, NewestFirst: true})
}
