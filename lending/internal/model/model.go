package model

import (
	"strings"
	"time"

	"github.com/JasonDavD/biblioteca-bibliotech/pkg/clock"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOverdue  Status = "OVERDUE"
	StatusReturned Status = "RETURNED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusReturned:
		return true
	}
	return false
}

// Open reports whether a loan in status s still holds a copy.
func (s Status) Open() bool {
	return s == StatusActive || s == StatusOverdue
}

type Item struct {
	ID              int64     `json:"id" db:"id"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	TotalCopies     int       `json:"totalCopies" db:"total_copies"`
	AvailableCopies int       `json:"availableCopies" db:"available_copies"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type Patron struct {
	ID         int64     `json:"id" db:"id"`
	NationalID string    `json:"nationalId" db:"national_id"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Email      *string   `json:"email,omitempty" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

func (p Patron) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type PatronSummary struct {
	Patron        `json:",inline"`
	OpenLoans     int `json:"openLoans"`
	OverdueLoans  int `json:"overdueLoans"`
	LifetimeLoans int `json:"lifetimeLoans"`
}

// Loan binds one patron to one item. DaysRemaining, DaysLate and Overdue are
// derived on read by Derive and never stored.
type Loan struct {
	ID         int64      `json:"id" db:"id"`
	ItemID     int64      `json:"itemId" db:"item_id"`
	PatronID   int64      `json:"patronId" db:"patron_id"`
	LoanDate   time.Time  `json:"loanDate" db:"loan_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status     Status     `json:"status" db:"status"`
	Notes      string     `json:"notes" db:"notes"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`

	DaysRemaining int  `json:"daysRemaining" db:"-"`
	DaysLate      int  `json:"daysLate" db:"-"`
	Overdue       bool `json:"overdue" db:"-"`
}

func (l Loan) Open() bool { return l.Status.Open() }

// Derive returns a copy of l with the read-time fields computed against today.
func (l Loan) Derive(today time.Time) Loan {
	l.DaysRemaining = 0
	if l.ReturnDate == nil {
		l.DaysRemaining = clock.DaysBetween(today, l.DueDate)
	}

	end := today
	if l.ReturnDate != nil {
		end = *l.ReturnDate
	}
	l.DaysLate = max(0, clock.DaysBetween(l.DueDate, end))

	l.Overdue = l.Status == StatusOverdue ||
		(l.Status == StatusActive && clock.Date(l.DueDate).Before(clock.Date(today)))
	return l
}

// AppendNote concatenates note to the existing notes, never overwriting them.
func (l *Loan) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if l.Notes == "" {
		l.Notes = note
		return
	}
	l.Notes = l.Notes + NoteSeparator + note
}

const NoteSeparator = " | "

// LoanDetail is the reporting projection of a loan joined with its item and patron.
type LoanDetail struct {
	Loan             `json:",inline"`
	ItemTitle        string `json:"itemTitle" db:"item_title"`
	ItemISBN         string `json:"itemIsbn" db:"item_isbn"`
	PatronName       string `json:"patronName" db:"patron_name"`
	PatronNationalID string `json:"patronNationalId" db:"patron_national_id"`
}

type LoanFilter struct {
	Status   Status
	PatronID int64
	ItemID   int64
	// DueFrom and DueTo bound the due date inclusively when set.
	DueFrom *time.Time
	DueTo   *time.Time
	// NewestFirst orders by loan date descending instead of due date ascending.
	NewestFirst bool
}

type CreateLoanRequest struct {
	ItemID   int64  `json:"itemId" validate:"required,gt=0"`
	PatronID int64  `json:"patronId" validate:"required,gt=0"`
	DueDate  Date   `json:"dueDate"`
	Notes    string `json:"notes" validate:"max=1000"`
}

type ReturnLoanRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type ExtendLoanRequest struct {
	DueDate Date `json:"dueDate"`
}

type CreateItemRequest struct {
	ISBN        string `json:"isbn" validate:"required,max=20"`
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"max=255"`
	TotalCopies int    `json:"totalCopies" validate:"gte=0"`
}

type ResizeCapacityRequest struct {
	TotalCopies int `json:"totalCopies" validate:"gte=0"`
}

type CreatePatronRequest struct {
	NationalID string  `json:"nationalId" validate:"required,max=20"`
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      string  `json:"phone" validate:"max=30"`
}

type LoanStats struct {
	Open          int `json:"open" db:"open"`
	Overdue       int `json:"overdue" db:"overdue"`
	CreatedToday  int `json:"createdToday" db:"created_today"`
	ReturnedToday int `json:"returnedToday" db:"returned_today"`
}

type InventoryStats struct {
	Titles          int `json:"titles" db:"titles"`
	TotalCopies     int `json:"totalCopies" db:"total_copies"`
	AvailableCopies int `json:"availableCopies" db:"available_copies"`
}

type PatronStats struct {
	Total  int `json:"total" db:"total"`
	Active int `json:"active" db:"active"`
}

type Dashboard struct {
	Loans     LoanStats      `json:"loans"`
	Inventory InventoryStats `json:"inventory"`
	Patrons   PatronStats    `json:"patrons"`
	DueSoon   []LoanDetail   `json:"dueSoon"`
}

// CapacityChanged is consumed from the catalog when an item's total copies are edited.
type CapacityChanged struct {
	ItemID      int64 `json:"itemId"`
	TotalCopies int   `json:"totalCopies"`
}
