package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
)

const returnNotePrefix = "Return: "

// CreateLoan checks the patron-side policy first and touches inventory last,
// all inside one unit of work. A zero due date defaults to the policy loan period.
func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	today := s.today()
	due := clock.Date(req.DueDate.Time)
	if req.DueDate.IsZero() {
		due = today.AddDate(0, 0, s.policy.DefaultLoanDays)
	}

	var loan model.Loan
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		patron, err := tx.LockPatron(ctx, req.PatronID)
		if err != nil {
			return err
		}
		// an unknown patron is reported before a bad date.
		if !due.After(today) {
			return errors.Wrapf(errs.ErrInvalidDate, "due date %s", due.Format(time.DateOnly))
		}
		if !patron.Active {
			return errors.Wrapf(errs.ErrPatronInactive, "patron %d", patron.ID)
		}
		open, err := tx.CountOpenLoans(ctx, patron.ID)
		if err != nil {
			return err
		}
		if open >= s.policy.MaxOpenLoans {
			return errors.Wrapf(errs.ErrLoanLimit, "patron %d holds %d open loans", patron.ID, open)
		}
		dup, err := tx.HasOpenLoan(ctx, patron.ID, req.ItemID)
		if err != nil {
			return err
		}
		if dup {
			return errors.Wrapf(errs.ErrDuplicateLoan, "patron %d item %d", patron.ID, req.ItemID)
		}
		if _, err := tx.GetItem(ctx, req.ItemID); err != nil {
			return err
		}
		reserved, err := tx.ReserveCopy(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if !reserved {
			return errors.Wrapf(errs.ErrOutOfStock, "item %d", req.ItemID)
		}
		loan, err = tx.InsertLoan(ctx, model.Loan{
			ItemID:   req.ItemID,
			PatronID: patron.ID,
			LoanDate: today,
			DueDate:  due,
			Status:   model.StatusActive,
			Notes:    strings.TrimSpace(req.Notes),
		})
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.log.Info("loan created",
		zap.Int64("loan_id", loan.ID),
		zap.Int64("item_id", loan.ItemID),
		zap.Int64("patron_id", loan.PatronID))
	dueDate := model.NewDate(loan.DueDate)
	s.publish(ctx, model.Event{
		Type:     model.EventLoanCreated,
		LoanID:   loan.ID,
		ItemID:   loan.ItemID,
		PatronID: loan.PatronID,
		Status:   loan.Status,
		DueDate:  &dueDate,
	})
	return loan.Derive(today), nil
}

// ReturnLoan closes an open loan and gives its copy back in the same unit.
// The returned loan carries DaysLate for the caller.
func (s *Service) ReturnLoan(ctx context.Context, id int64, req model.ReturnLoanRequest) (model.Loan, error) {
	today := s.today()

	var loan model.Loan
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		cur, err := tx.LockLoan(ctx, id)
		if err != nil {
			return err
		}
		if cur.Status == model.StatusReturned {
			return errors.Wrapf(errs.ErrAlreadyReturned, "loan %d", id)
		}
		cur.Status = model.StatusReturned
		cur.ReturnDate = &today
		if note := strings.TrimSpace(req.Notes); note != "" {
			cur.AppendNote(returnNotePrefix + note)
		}
		if loan, err = tx.UpdateLoan(ctx, cur); err != nil {
			return err
		}
		released, err := tx.ReleaseCopy(ctx, cur.ItemID)
		if err != nil {
			return err
		}
		if !released {
			s.log.Warn("release at capacity", zap.Int64("loan_id", id), zap.Int64("item_id", cur.ItemID))
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}

	loan = loan.Derive(today)
	s.log.Info("loan returned", zap.Int64("loan_id", loan.ID), zap.Int("days_late", loan.DaysLate))
	s.publish(ctx, model.Event{
		Type:     model.EventLoanReturned,
		LoanID:   loan.ID,
		ItemID:   loan.ItemID,
		PatronID: loan.PatronID,
		Status:   loan.Status,
		DaysLate: loan.DaysLate,
	})
	return loan, nil
}

// ExtendLoan moves the due date of an open loan forward. An overdue loan
// becomes active again.
func (s *Service) ExtendLoan(ctx context.Context, id int64, req model.ExtendLoanRequest) (model.Loan, error) {
	today := s.today()
	due := clock.Date(req.DueDate.Time)

	var loan model.Loan
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		cur, err := tx.LockLoan(ctx, id)
		if err != nil {
			return err
		}
		if !cur.Open() {
			return errors.Wrapf(errs.ErrInvalidState, "loan %d is %s", id, cur.Status)
		}
		if req.DueDate.IsZero() || !due.After(today) {
			return errors.Wrapf(errs.ErrInvalidDate, "due date %s", due.Format(time.DateOnly))
		}
		cur.DueDate = due
		cur.Status = model.StatusActive
		cur.AppendNote("Due date extended to " + due.Format(time.DateOnly))
		loan, err = tx.UpdateLoan(ctx, cur)
		return err
	})
	if err != nil {
		return model.Loan{}, err
	}

	dueDate := model.NewDate(loan.DueDate)
	s.publish(ctx, model.Event{
		Type:     model.EventLoanExtended,
		LoanID:   loan.ID,
		ItemID:   loan.ItemID,
		PatronID: loan.PatronID,
		Status:   loan.Status,
		DueDate:  &dueDate,
	})
	return loan.Derive(today), nil
}

// SweepOverdue reclassifies every active loan past its due date. It never
// touches inventory and is safe to repeat.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	today := s.today()
	var n int
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		n, err = tx.MarkOverdue(ctx, today)
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("overdue sweep", zap.Int("marked", n))
		s.publish(ctx, model.Event{Type: model.EventLoansSwept, Count: n})
	}
	return n, nil
}

func (s *Service) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	if _, err := s.SweepOverdue(ctx); err != nil {
		return model.Loan{}, err
	}
	loan, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}
	return loan.Derive(s.today()), nil
}
