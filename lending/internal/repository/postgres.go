package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
)

const (
	itemsTableName   = `items`
	patronsTableName = `patrons`
	loansTableName   = `loans`

	openLoanIndex = `loans_open_patron_item_uidx`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	itemColumns   = []string{"id", "isbn", "title", "author", "total_copies", "available_copies", "updated_at"}
	patronColumns = []string{"id", "national_id", "first_name", "last_name", "email", "phone", "active", "created_at"}
	loanColumns   = []string{"id", "item_id", "patron_id", "loan_date", "due_date", "return_date", "status", "notes", "created_at"}
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Postgres struct {
	pgReader
	db *pgxpool.Pool
}

var _ Repository = (*Postgres)(nil)

func NewPostgres(db *pgxpool.Pool, log *zap.Logger) *Postgres {
	log = log.Named("repo")
	return &Postgres{
		pgReader: pgReader{q: db, log: log},
		db:       db,
	}
}

func (r *Postgres) Tx(ctx context.Context, fn func(tx Tx) error) error {
	return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(&pgTx{pgReader{q: tx, log: r.log}})
	})
}

type pgReader struct {
	q   querier
	log *zap.Logger
}

type pgTx struct {
	pgReader
}

func qualify(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

func collectOne[T any](rows pgx.Rows, err error, what string, id int64) (T, error) {
	var zero T
	if err != nil {
		return zero, mapError(err)
	}
	defer rows.Close()
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errors.Wrapf(errs.ErrNotFound, "%s %d", what, id)
		}
		return zero, mapError(err)
	}
	return v, nil
}

// mapError translates constraint violations into ledger errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == openLoanIndex {
			return errors.Wrap(errs.ErrDuplicateLoan, pgErr.Detail)
		}
		return errors.Wrap(errs.ErrDuplicateKey, pgErr.Detail)
	case pgerrcode.CheckViolation:
		return errors.Wrap(errs.ErrCapacity, pgErr.ConstraintName)
	case pgerrcode.ForeignKeyViolation:
		return errors.Wrap(errs.ErrNotFound, pgErr.Detail)
	}
	return err
}

func (r *pgReader) getItem(ctx context.Context, id int64, lock bool) (model.Item, error) {
	b := qb.Select(itemColumns...).From(itemsTableName).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("for update")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Item{}, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	return collectOne[model.Item](rows, err, "item", id)
}

func (r *pgReader) GetItem(ctx context.Context, id int64) (model.Item, error) {
	return r.getItem(ctx, id, false)
}

func (r *pgReader) getPatron(ctx context.Context, id int64, lock bool) (model.Patron, error) {
	b := qb.Select(patronColumns...).From(patronsTableName).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("for update")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Patron{}, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	return collectOne[model.Patron](rows, err, "patron", id)
}

func (r *pgReader) GetPatron(ctx context.Context, id int64) (model.Patron, error) {
	return r.getPatron(ctx, id, false)
}

func (r *pgReader) getLoan(ctx context.Context, id int64, lock bool) (model.Loan, error) {
	b := qb.Select(loanColumns...).From(loansTableName).Where(sq.Eq{"id": id})
	if lock {
		b = b.Suffix("for update")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	return collectOne[model.Loan](rows, err, "loan", id)
}

func (r *pgReader) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	return r.getLoan(ctx, id, false)
}

func (r *pgReader) CountOpenLoans(ctx context.Context, patronID int64) (int, error) {
	q := `
select count(*) from loans
where patron_id = @patron_id and status in ('ACTIVE', 'OVERDUE')`
	var n int
	if err := r.q.QueryRow(ctx, q, pgx.NamedArgs{"patron_id": patronID}).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *pgReader) PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error) {
	p, err := r.GetPatron(ctx, id)
	if err != nil {
		return model.PatronSummary{}, err
	}
	q := `
select count(*) filter (where status in ('ACTIVE', 'OVERDUE')),
       count(*) filter (where status = 'OVERDUE'),
       count(*)
from loans
where patron_id = @patron_id`
	sum := model.PatronSummary{Patron: p}
	err = r.q.QueryRow(ctx, q, pgx.NamedArgs{"patron_id": id}).
		Scan(&sum.OpenLoans, &sum.OverdueLoans, &sum.LifetimeLoans)
	if err != nil {
		return model.PatronSummary{}, err
	}
	return sum, nil
}

func applyFilter(b sq.SelectBuilder, f model.LoanFilter, prefix string) sq.SelectBuilder {
	if f.Status != "" {
		b = b.Where(sq.Eq{prefix + "status": string(f.Status)})
	}
	if f.PatronID != 0 {
		b = b.Where(sq.Eq{prefix + "patron_id": f.PatronID})
	}
	if f.ItemID != 0 {
		b = b.Where(sq.Eq{prefix + "item_id": f.ItemID})
	}
	if f.DueFrom != nil {
		b = b.Where(sq.GtOrEq{prefix + "due_date": *f.DueFrom})
	}
	if f.DueTo != nil {
		b = b.Where(sq.LtOrEq{prefix + "due_date": *f.DueTo})
	}
	if f.NewestFirst {
		return b.OrderBy(prefix+"loan_date desc", prefix+"id desc")
	}
	return b.OrderBy(prefix+"due_date", prefix+"id")
}

func (r *pgReader) ListLoans(ctx context.Context, f model.LoanFilter) ([]model.Loan, error) {
	query, args, err := applyFilter(qb.Select(loanColumns...).From(loansTableName), f, "").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListLoans", zap.String("query", query), zap.Any("args", args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return loans, nil
}

func (r *pgReader) ListLoanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error) {
	cols := append(qualify("l", loanColumns),
		"i.title as item_title",
		"i.isbn as item_isbn",
		"trim(p.first_name || ' ' || p.last_name) as patron_name",
		"p.national_id as patron_national_id",
	)
	b := qb.Select(cols...).
		From(loansTableName + " l").
		Join(fmt.Sprintf("%s i on i.id = l.item_id", itemsTableName)).
		Join(fmt.Sprintf("%s p on p.id = l.patron_id", patronsTableName))
	query, args, err := applyFilter(b, f, "l.").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListLoanDetails", zap.String("query", query), zap.Any("args", args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.LoanDetail])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return details, nil
}

func (r *pgReader) LoanStats(ctx context.Context, today time.Time) (model.LoanStats, error) {
	q := `
select count(*) filter (where status in ('ACTIVE', 'OVERDUE'))                as open,
       count(*) filter (where status = 'OVERDUE')                            as overdue,
       count(*) filter (where loan_date = @today)                            as created_today,
       count(*) filter (where status = 'RETURNED' and return_date = @today)  as returned_today
from loans`
	rows, err := r.q.Query(ctx, q, pgx.NamedArgs{"today": today})
	if err != nil {
		return model.LoanStats{}, err
	}
	defer rows.Close()
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LoanStats])
}

func (r *pgReader) InventoryStats(ctx context.Context) (model.InventoryStats, error) {
	q := `
select count(*)                          as titles,
       coalesce(sum(total_copies), 0)     as total_copies,
       coalesce(sum(available_copies), 0) as available_copies
from items`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return model.InventoryStats{}, err
	}
	defer rows.Close()
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.InventoryStats])
}

func (r *pgReader) PatronStats(ctx context.Context) (model.PatronStats, error) {
	q := `select count(*) as total, count(*) filter (where active) as active from patrons`
	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return model.PatronStats{}, err
	}
	defer rows.Close()
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PatronStats])
}

func (r *pgReader) ListPatronsWithOverdue(ctx context.Context) ([]model.Patron, error) {
	query, args, err := qb.Select(qualify("p", patronColumns)...).
		Distinct().
		From(patronsTableName + " p").
		Join(fmt.Sprintf("%s l on l.patron_id = p.id", loansTableName)).
		Where(sq.Eq{"l.status": string(model.StatusOverdue)}).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListPatronsWithOverdue", zap.String("query", query))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patrons, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Patron])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return patrons, nil
}

func (t *pgTx) LockPatron(ctx context.Context, id int64) (model.Patron, error) {
	return t.getPatron(ctx, id, true)
}

func (t *pgTx) LockLoan(ctx context.Context, id int64) (model.Loan, error) {
	return t.getLoan(ctx, id, true)
}

func (t *pgTx) HasOpenLoan(ctx context.Context, patronID, itemID int64) (bool, error) {
	q := `
select exists(select 1 from loans
              where patron_id = @patron_id and item_id = @item_id and status in ('ACTIVE', 'OVERDUE'))`
	var ok bool
	err := t.q.QueryRow(ctx, q, pgx.NamedArgs{"patron_id": patronID, "item_id": itemID}).Scan(&ok)
	return ok, err
}

// shiftCopies applies a guarded single-copy move. A false result with a nil
// error means the item exists but the guard held.
func (t *pgTx) shiftCopies(ctx context.Context, q string, itemID int64) (bool, error) {
	tag, err := t.q.Exec(ctx, q, pgx.NamedArgs{"id": itemID})
	if err != nil {
		return false, mapError(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err := t.GetItem(ctx, itemID); err != nil {
		return false, err
	}
	return false, nil
}

func (t *pgTx) ReserveCopy(ctx context.Context, itemID int64) (bool, error) {
	q := `
update items
    set available_copies = available_copies - 1, updated_at = now()
where id = @id and available_copies > 0`
	return t.shiftCopies(ctx, q, itemID)
}

func (t *pgTx) ReleaseCopy(ctx context.Context, itemID int64) (bool, error) {
	q := `
update items
    set available_copies = available_copies + 1, updated_at = now()
where id = @id and available_copies < total_copies`
	return t.shiftCopies(ctx, q, itemID)
}

func (t *pgTx) ResizeCapacity(ctx context.Context, itemID int64, newTotal int) (model.Item, error) {
	if newTotal < 0 {
		return model.Item{}, errors.Wrapf(errs.ErrInvalidArgument, "total copies %d", newTotal)
	}
	query, args, err := qb.Update(itemsTableName).
		Set("available_copies", sq.Expr("available_copies + (? - total_copies)", newTotal)).
		Set("total_copies", newTotal).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID}).
		Suffix("returning " + joinColumns(itemColumns)).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	item, err := collectOne[model.Item](rows, err, "item", itemID)
	if err != nil {
		t.log.Warn("ResizeCapacity", zap.Int64("item_id", itemID), zap.Int("total", newTotal), zap.Error(err))
		return model.Item{}, err
	}
	return item, nil
}

func (t *pgTx) CreateItem(ctx context.Context, req model.CreateItemRequest) (model.Item, error) {
	if req.TotalCopies < 0 {
		return model.Item{}, errors.Wrapf(errs.ErrInvalidArgument, "total copies %d", req.TotalCopies)
	}
	query, args, err := qb.Insert(itemsTableName).
		Columns("isbn", "title", "author", "total_copies", "available_copies").
		Values(req.ISBN, req.Title, req.Author, req.TotalCopies, req.TotalCopies).
		Suffix("returning " + joinColumns(itemColumns)).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	return collectOne[model.Item](rows, err, "item", 0)
}

func (t *pgTx) CreatePatron(ctx context.Context, req model.CreatePatronRequest) (model.Patron, error) {
	query, args, err := qb.Insert(patronsTableName).
		Columns("national_id", "first_name", "last_name", "email", "phone").
		Values(req.NationalID, req.FirstName, req.LastName, req.Email, req.Phone).
		Suffix("returning " + joinColumns(patronColumns)).
		ToSql()
	if err != nil {
		return model.Patron{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	return collectOne[model.Patron](rows, err, "patron", 0)
}

func (t *pgTx) SetPatronActive(ctx context.Context, id int64, active bool) (model.Patron, error) {
	query, args, err := qb.Update(patronsTableName).
		Set("active", active).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + joinColumns(patronColumns)).
		ToSql()
	if err != nil {
		return model.Patron{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	return collectOne[model.Patron](rows, err, "patron", id)
}

func (t *pgTx) DeletePatron(ctx context.Context, id int64) error {
	tag, err := t.q.Exec(ctx, `delete from patrons where id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errors.Wrapf(errs.ErrPatronHasHistory, "patron %d", id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "patron %d", id)
	}
	return nil
}

func (t *pgTx) InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns("item_id", "patron_id", "loan_date", "due_date", "return_date", "status", "notes").
		Values(loan.ItemID, loan.PatronID, loan.LoanDate, loan.DueDate, loan.ReturnDate, string(loan.Status), loan.Notes).
		Suffix("returning " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	created, err := collectOne[model.Loan](rows, err, "loan", 0)
	if err != nil {
		t.log.Error("InsertLoan", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Loan{}, err
	}
	return created, nil
}

func (t *pgTx) UpdateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Update(loansTableName).
		Set("due_date", loan.DueDate).
		Set("return_date", loan.ReturnDate).
		Set("status", string(loan.Status)).
		Set("notes", loan.Notes).
		Where(sq.Eq{"id": loan.ID}).
		Suffix("returning " + joinColumns(loanColumns)).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := t.q.Query(ctx, query, args...)
	return collectOne[model.Loan](rows, err, "loan", loan.ID)
}

func (t *pgTx) MarkOverdue(ctx context.Context, today time.Time) (int, error) {
	q := `
update loans
    set status = 'OVERDUE'
where status = 'ACTIVE' and due_date < @today`
	tag, err := t.q.Exec(ctx, q, pgx.NamedArgs{"today": today})
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
