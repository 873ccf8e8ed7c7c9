package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/repository"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/migrations"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/postgres"
)

// newPostgresFixture runs the ledger on a real database, so row locks and
// READ COMMITTED re-reads decide the races instead of the in-memory mutex.
func newPostgresFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := os.Getenv("LENDING_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LENDING_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, dsn, 8, migrations.MigrationFiles)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `truncate loans, patrons, items restart identity cascade`)
	require.NoError(t, err)

	c := clock.NewManual(day0)
	rec := &recorder{}
	repo := repository.NewPostgres(pool, zap.NewNop())
	svc := NewService(repo, zap.NewExample().Named("test"), WithClock(c), WithEnqueuer(rec))
	return &fixture{svc: svc, clock: c, events: rec}
}

// race fires every call at once and returns their errors in call order.
func race(calls ...func() error) []error {
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		out   = make([]error, len(calls))
	)
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call func() error) {
			defer wg.Done()
			<-start
			out[i] = call()
		}(i, call)
	}
	close(start)
	wg.Wait()
	return out
}

func countOutcomes(t *testing.T, results []error, loser error) (ok, lost int) {
	t.Helper()
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, loser):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return ok, lost
}

func TestPostgresService_ConcurrentLimitBoundary(t *testing.T) {
	f := newPostgresFixture(t)
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		patron := f.patron(t, fmt.Sprintf("91%02d", round))
		f.loan(t, f.item(t, 1), patron)
		f.loan(t, f.item(t, 1), patron)
		third, fourth := f.item(t, 1), f.item(t, 1)

		results := race(
			func() error {
				_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: third.ID, PatronID: patron.ID})
				return err
			},
			func() error {
				_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: fourth.ID, PatronID: patron.ID})
				return err
			},
		)
		ok, lost := countOutcomes(t, results, errs.ErrLoanLimit)
		require.Equal(t, 1, ok, "round %d", round)
		require.Equal(t, 1, lost, "round %d", round)

		n, err := f.svc.CountOpenLoans(ctx, patron.ID)
		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, 1, f.available(t, third.ID)+f.available(t, fourth.ID))
	}
}

func TestPostgresService_ConcurrentLastCopy(t *testing.T) {
	f := newPostgresFixture(t)
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		item := f.item(t, 1)
		a := f.patron(t, fmt.Sprintf("92%02d", round))
		b := f.patron(t, fmt.Sprintf("93%02d", round))

		results := race(
			func() error {
				_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: item.ID, PatronID: a.ID})
				return err
			},
			func() error {
				_, err := f.svc.CreateLoan(ctx, model.CreateLoanRequest{ItemID: item.ID, PatronID: b.ID})
				return err
			},
		)
		ok, lost := countOutcomes(t, results, errs.ErrOutOfStock)
		require.Equal(t, 1, ok, "round %d", round)
		require.Equal(t, 1, lost, "round %d", round)
		require.Zero(t, f.available(t, item.ID))
	}
}

func TestPostgresService_ListPatronsWithOverdue(t *testing.T) {
	f := newPostgresFixture(t)
	ctx := context.Background()
	late := f.patron(t, "9401")
	onTime := f.patron(t, "9402")
	f.loan(t, f.item(t, 1), late)
	f.loan(t, f.item(t, 1), late)

	f.clock.Advance(20)
	f.loan(t, f.item(t, 1), onTime)

	patrons, err := f.svc.ListPatronsWithOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, patrons, 1)
	require.Equal(t, late.ID, patrons[0].ID)
	require.Equal(t, late.NationalID, patrons[0].NationalID)
}
