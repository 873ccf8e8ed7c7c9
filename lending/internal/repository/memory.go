package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/errs"
	"github.com/JasonDavD/biblioteca-bibliotech/lending/internal/model"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Memory keeps the ledger in process. Transactions are serialised behind a
// single lock and applied copy-on-write, so a failed unit leaves no trace.
type Memory struct {
	mu    sync.RWMutex
	st    *state
	clock clock.Clock
	log   *zap.Logger
}

var _ Repository = (*Memory)(nil)

func NewMemory(c clock.Clock, log *zap.Logger) *Memory {
	return &Memory{
		st: &state{
			items:   make(map[int64]model.Item),
			patrons: make(map[int64]model.Patron),
			loans:   make(map[int64]model.Loan),
		},
		clock: c,
		log:   log.Named("repo"),
	}
}

type state struct {
	items   map[int64]model.Item
	patrons map[int64]model.Patron
	loans   map[int64]model.Loan
	seq     int64
}

func (s *state) clone() *state {
	c := &state{
		items:   make(map[int64]model.Item, len(s.items)),
		patrons: make(map[int64]model.Patron, len(s.patrons)),
		loans:   make(map[int64]model.Loan, len(s.loans)),
		seq:     s.seq,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.patrons {
		c.patrons[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func (m *Memory) Tx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.st.clone()
	if err := fn(&memTx{st: work, clock: m.clock}); err != nil {
		m.log.Debug("tx rolled back", zap.Error(err))
		return err
	}
	m.st = work
	return nil
}

func (m *Memory) reader() *memTx {
	return &memTx{st: m.st, clock: m.clock}
}

func (m *Memory) GetItem(ctx context.Context, id int64) (model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().GetItem(ctx, id)
}

func (m *Memory) GetPatron(ctx context.Context, id int64) (model.Patron, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().GetPatron(ctx, id)
}

func (m *Memory) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().GetLoan(ctx, id)
}

func (m *Memory) CountOpenLoans(ctx context.Context, patronID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().CountOpenLoans(ctx, patronID)
}

func (m *Memory) PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().PatronSummary(ctx, id)
}

func (m *Memory) ListLoans(ctx context.Context, f model.LoanFilter) ([]model.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().ListLoans(ctx, f)
}

func (m *Memory) ListLoanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().ListLoanDetails(ctx, f)
}

func (m *Memory) LoanStats(ctx context.Context, today time.Time) (model.LoanStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().LoanStats(ctx, today)
}

func (m *Memory) InventoryStats(ctx context.Context) (model.InventoryStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().InventoryStats(ctx)
}

func (m *Memory) PatronStats(ctx context.Context) (model.PatronStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().PatronStats(ctx)
}

func (m *Memory) ListPatronsWithOverdue(ctx context.Context) ([]model.Patron, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reader().ListPatronsWithOverdue(ctx)
}

type memTx struct {
	st    *state
	clock clock.Clock
}

func (t *memTx) GetItem(_ context.Context, id int64) (model.Item, error) {
	item, ok := t.st.items[id]
	if !ok {
		return model.Item{}, errors.Wrapf(errs.ErrNotFound, "item %d", id)
	}
	return item, nil
}

func (t *memTx) GetPatron(_ context.Context, id int64) (model.Patron, error) {
	p, ok := t.st.patrons[id]
	if !ok {
		return model.Patron{}, errors.Wrapf(errs.ErrNotFound, "patron %d", id)
	}
	return p, nil
}

func (t *memTx) GetLoan(_ context.Context, id int64) (model.Loan, error) {
	l, ok := t.st.loans[id]
	if !ok {
		return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "loan %d", id)
	}
	return l, nil
}

func (t *memTx) CountOpenLoans(_ context.Context, patronID int64) (int, error) {
	n := 0
	for _, l := range t.st.loans {
		if l.PatronID == patronID && l.Open() {
			n++
		}
	}
	return n, nil
}

func (t *memTx) PatronSummary(ctx context.Context, id int64) (model.PatronSummary, error) {
	p, err := t.GetPatron(ctx, id)
	if err != nil {
		return model.PatronSummary{}, err
	}
	sum := model.PatronSummary{Patron: p}
	for _, l := range t.st.loans {
		if l.PatronID != id {
			continue
		}
		sum.LifetimeLoans++
		if l.Open() {
			sum.OpenLoans++
		}
		if l.Status == model.StatusOverdue {
			sum.OverdueLoans++
		}
	}
	return sum, nil
}

func matches(l model.Loan, f model.LoanFilter) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.PatronID != 0 && l.PatronID != f.PatronID {
		return false
	}
	if f.ItemID != 0 && l.ItemID != f.ItemID {
		return false
	}
	if f.DueFrom != nil && l.DueDate.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && l.DueDate.After(*f.DueTo) {
		return false
	}
	return true
}

func (t *memTx) ListLoans(_ context.Context, f model.LoanFilter) ([]model.Loan, error) {
	out := make([]model.Loan, 0)
	for _, l := range t.st.loans {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.NewestFirst {
			if !a.LoanDate.Equal(b.LoanDate) {
				return a.LoanDate.After(b.LoanDate)
			}
			return a.ID > b.ID
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (t *memTx) ListLoanDetails(ctx context.Context, f model.LoanFilter) ([]model.LoanDetail, error) {
	loans, err := t.ListLoans(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.LoanDetail, 0, len(loans))
	for _, l := range loans {
		item := t.st.items[l.ItemID]
		p := t.st.patrons[l.PatronID]
		out = append(out, model.LoanDetail{
			Loan:             l,
			ItemTitle:        item.Title,
			ItemISBN:         item.ISBN,
			PatronName:       p.FullName(),
			PatronNationalID: p.NationalID,
		})
	}
	return out, nil
}

func (t *memTx) LoanStats(_ context.Context, today time.Time) (model.LoanStats, error) {
	var st model.LoanStats
	for _, l := range t.st.loans {
		if l.Open() {
			st.Open++
		}
		if l.Status == model.StatusOverdue {
			st.Overdue++
		}
		if l.LoanDate.Equal(today) {
			st.CreatedToday++
		}
		if l.Status == model.StatusReturned && l.ReturnDate != nil && l.ReturnDate.Equal(today) {
			st.ReturnedToday++
		}
	}
	return st, nil
}

func (t *memTx) InventoryStats(context.Context) (model.InventoryStats, error) {
	var st model.InventoryStats
	for _, it := range t.st.items {
		st.Titles++
		st.TotalCopies += it.TotalCopies
		st.AvailableCopies += it.AvailableCopies
	}
	return st, nil
}

func (t *memTx) PatronStats(context.Context) (model.PatronStats, error) {
	var st model.PatronStats
	for _, p := range t.st.patrons {
		st.Total++
		if p.Active {
			st.Active++
		}
	}
	return st, nil
}

func (t *memTx) ListPatronsWithOverdue(context.Context) ([]model.Patron, error) {
	seen := make(map[int64]struct{})
	out := make([]model.Patron, 0)
	for _, l := range t.st.loans {
		if l.Status != model.StatusOverdue {
			continue
		}
		if _, ok := seen[l.PatronID]; ok {
			continue
		}
		seen[l.PatronID] = struct{}{}
		if p, ok := t.st.patrons[l.PatronID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) LockPatron(ctx context.Context, id int64) (model.Patron, error) {
	return t.GetPatron(ctx, id)
}

func (t *memTx) LockLoan(ctx context.Context, id int64) (model.Loan, error) {
	return t.GetLoan(ctx, id)
}

func (t *memTx) HasOpenLoan(_ context.Context, patronID, itemID int64) (bool, error) {
	for _, l := range t.st.loans {
		if l.PatronID == patronID && l.ItemID == itemID && l.Open() {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) ReserveCopy(ctx context.Context, itemID int64) (bool, error) {
	item, err := t.GetItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item.AvailableCopies <= 0 {
		return false, nil
	}
	item.AvailableCopies--
	item.UpdatedAt = t.clock.Now()
	t.st.items[itemID] = item
	return true, nil
}

func (t *memTx) ReleaseCopy(ctx context.Context, itemID int64) (bool, error) {
	item, err := t.GetItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item.AvailableCopies >= item.TotalCopies {
		return false, nil
	}
	item.AvailableCopies++
	item.UpdatedAt = t.clock.Now()
	t.st.items[itemID] = item
	return true, nil
}

func (t *memTx) ResizeCapacity(ctx context.Context, itemID int64, newTotal int) (model.Item, error) {
	if newTotal < 0 {
		return model.Item{}, errors.Wrapf(errs.ErrInvalidArgument, "total copies %d", newTotal)
	}
	item, err := t.GetItem(ctx, itemID)
	if err != nil {
		return model.Item{}, err
	}
	available := item.AvailableCopies + newTotal - item.TotalCopies
	if available < 0 {
		return model.Item{}, errors.Wrapf(errs.ErrCapacity, "item %d has %d copies on loan", itemID, item.TotalCopies-item.AvailableCopies)
	}
	item.TotalCopies = newTotal
	item.AvailableCopies = available
	item.UpdatedAt = t.clock.Now()
	t.st.items[itemID] = item
	return item, nil
}

func (t *memTx) CreateItem(_ context.Context, req model.CreateItemRequest) (model.Item, error) {
	if req.TotalCopies < 0 {
		return model.Item{}, errors.Wrapf(errs.ErrInvalidArgument, "total copies %d", req.TotalCopies)
	}
	for _, it := range t.st.items {
		if it.ISBN == req.ISBN {
			return model.Item{}, errors.Wrapf(errs.ErrDuplicateKey, "isbn %s", req.ISBN)
		}
	}
	item := model.Item{
		ID:              t.st.nextID(),
		ISBN:            req.ISBN,
		Title:           req.Title,
		Author:          req.Author,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		UpdatedAt:       t.clock.Now(),
	}
	t.st.items[item.ID] = item
	return item, nil
}

func (t *memTx) CreatePatron(_ context.Context, req model.CreatePatronRequest) (model.Patron, error) {
	for _, p := range t.st.patrons {
		if p.NationalID == req.NationalID {
			return model.Patron{}, errors.Wrapf(errs.ErrDuplicateKey, "national id %s", req.NationalID)
		}
		if req.Email != nil && p.Email != nil && *p.Email == *req.Email {
			return model.Patron{}, errors.Wrapf(errs.ErrDuplicateKey, "email %s", *req.Email)
		}
	}
	p := model.Patron{
		ID:         t.st.nextID(),
		NationalID: req.NationalID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Active:     true,
		CreatedAt:  t.clock.Now(),
	}
	t.st.patrons[p.ID] = p
	return p, nil
}

func (t *memTx) SetPatronActive(ctx context.Context, id int64, active bool) (model.Patron, error) {
	p, err := t.GetPatron(ctx, id)
	if err != nil {
		return model.Patron{}, err
	}
	p.Active = active
	t.st.patrons[id] = p
	return p, nil
}

func (t *memTx) DeletePatron(ctx context.Context, id int64) error {
	if _, err := t.GetPatron(ctx, id); err != nil {
		return err
	}
	for _, l := range t.st.loans {
		if l.PatronID == id {
			return errors.Wrapf(errs.ErrPatronHasHistory, "patron %d", id)
		}
	}
	delete(t.st.patrons, id)
	return nil
}

func (t *memTx) InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	if _, err := t.GetItem(ctx, loan.ItemID); err != nil {
		return model.Loan{}, err
	}
	if _, err := t.GetPatron(ctx, loan.PatronID); err != nil {
		return model.Loan{}, err
	}
	if loan.Status.Open() {
		dup, err := t.HasOpenLoan(ctx, loan.PatronID, loan.ItemID)
		if err != nil {
			return model.Loan{}, err
		}
		if dup {
			return model.Loan{}, errors.Wrapf(errs.ErrDuplicateLoan, "patron %d item %d", loan.PatronID, loan.ItemID)
		}
	}
	loan.ID = t.st.nextID()
	loan.CreatedAt = t.clock.Now()
	t.st.loans[loan.ID] = loan
	return loan, nil
}

func (t *memTx) UpdateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	cur, err := t.GetLoan(ctx, loan.ID)
	if err != nil {
		return model.Loan{}, err
	}
	cur.DueDate = loan.DueDate
	cur.ReturnDate = loan.ReturnDate
	cur.Status = loan.Status
	cur.Notes = loan.Notes
	t.st.loans[cur.ID] = cur
	return cur, nil
}

func (t *memTx) MarkOverdue(_ context.Context, today time.Time) (int, error) {
	n := 0
	for id, l := range t.st.loans {
		if l.Status == model.StatusActive && l.DueDate.Before(today) {
			l.Status = model.StatusOverdue
			t.st.loans[id] = l
			n++
		}
	}
	return n, nil
}
