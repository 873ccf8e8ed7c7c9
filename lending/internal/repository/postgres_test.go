package repository

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/migrations"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/postgres"
)

func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("LENDING_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LENDING_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, dsn, 8, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	truncate(t, pool)
	return NewPostgres(pool, zap.NewExample().Named("test"))
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `truncate loans, patrons, items restart identity cascade`)
	require.NoError(t, err)
}

func TestPostgres_ReserveCopyConcurrent(t *testing.T) {
	r := newTestPostgres(t)
	item, _ := seed(t, r, 1)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Tx(context.Background(), func(tx Tx) error {
				ok, err := tx.ReserveCopy(context.Background(), item.ID)
				if err == nil && ok {
					mu.Lock()
					granted++
					mu.Unlock()
				}
				return err
			})
		}()
	}
	wg.Wait()
	require.Equal(t, 1, granted)

	got, err := r.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AvailableCopies)
}

func TestPostgres_ConstraintMapping(t *testing.T) {
	r := newTestPostgres(t)
	item, patron := seed(t, r, 2)
	ctx := context.Background()
	loan := model.Loan{ItemID: item.ID, PatronID: patron.ID, LoanDate: day0, DueDate: day0.AddDate(0, 0, 14), Status: model.StatusActive}

	require.NoError(t, r.Tx(ctx, func(tx Tx) error {
		_, err := tx.InsertLoan(ctx, loan)
		return err
	}))

	err := r.Tx(ctx, func(tx Tx) error {
		_, err := tx.InsertLoan(ctx, loan)
		return err
	})
	require.ErrorIs(t, err, errs.ErrDuplicateLoan)

	err = r.Tx(ctx, func(tx Tx) error {
		_, err := tx.CreateItem(ctx, model.CreateItemRequest{ISBN: item.ISBN, Title: "copy"})
		return err
	})
	require.ErrorIs(t, err, errs.ErrDuplicateKey)

	err = r.Tx(ctx, func(tx Tx) error { return tx.DeletePatron(ctx, patron.ID) })
	require.ErrorIs(t, err, errs.ErrPatronHasHistory)

	err = r.Tx(ctx, func(tx Tx) error {
		_, err := tx.ReserveCopy(ctx, item.ID)
		if err != nil {
			return err
		}
		_, err = tx.ResizeCapacity(ctx, item.ID, 0)
		return err
	})
	require.ErrorIs(t, err, errs.ErrCapacity)

	_, err = r.GetLoan(ctx, 12345)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPostgres_MarkOverdueIdempotent(t *testing.T) {
	r := newTestPostgres(t)
	item, patron := seed(t, r, 2)
	ctx := context.Background()

	require.NoError(t, r.Tx(ctx, func(tx Tx) error {
		_, err := tx.InsertLoan(ctx, model.Loan{
			ItemID: item.ID, PatronID: patron.ID, LoanDate: day0.AddDate(0, 0, -20), DueDate: day0.AddDate(0, 0, -6), Status: model.StatusActive,
		})
		return err
	}))

	for _, want := range []int{1, 0} {
		var n int
		require.NoError(t, r.Tx(ctx, func(tx Tx) error {
			var err error
			n, err = tx.MarkOverdue(ctx, day0)
			return err
		}))
		require.Equal(t, want, n)
	}

	stats, err := r.LoanStats(ctx, day0)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Open)
	require.Equal(t, 1, stats.Overdue)
}
