package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
)

func (s *Service) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	var item model.Item
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		item, err = tx.CreateItem(ctx, req)
		return err
	})
	return item, err
}

func (s *Service) GetItem(ctx context.Context, id int64) (model.Item, error) {
	return s.repo.GetItem(ctx, id)
}

// ReserveCopy takes one copy of the item if any is free.
func (s *Service) ReserveCopy(ctx context.Context, itemID int64) (bool, error) {
	var ok bool
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		ok, err = tx.ReserveCopy(ctx, itemID)
		return err
	})
	return ok, err
}

// ReleaseCopy gives one copy back unless the item is already at capacity.
func (s *Service) ReleaseCopy(ctx context.Context, itemID int64) (bool, error) {
	var ok bool
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		ok, err = tx.ReleaseCopy(ctx, itemID)
		return err
	})
	return ok, err
}

// ResizeCapacity sets the item's total copies and shifts its available copies
// by the same delta. It fails with errs.ErrCapacity when more copies are out
// than the new total allows.
func (s *Service) ResizeCapacity(ctx context.Context, itemID int64, newTotal int) (model.Item, error) {
	var item model.Item
	err := s.repo.Tx(ctx, func(tx repository.Tx) error {
		var err error
		item, err = tx.ResizeCapacity(ctx, itemID, newTotal)
		return err
	})
	if err != nil {
		return model.Item{}, err
	}

	s.log.Info("capacity resized",
		zap.Int64("item_id", item.ID),
		zap.Int("total", item.TotalCopies),
		zap.Int("available", item.AvailableCopies))
	s.publish(ctx, model.Event{
		Type:        model.EventItemResized,
		ItemID:      item.ID,
		TotalCopies: item.TotalCopies,
	})
	return item, nil
}
