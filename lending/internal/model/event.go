package model

import "time"

const (
	EventLoanCreated  = "loan.created"
	EventLoanReturned = "loan.returned"
	EventLoanExtended = "loan.extended"
	EventLoansSwept   = "loans.swept"
	EventItemResized  = "item.resized"
)

// Event is published to the broker after a ledger mutation commits.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
	LoanID      int64     `json:"loanId,omitempty"`
	ItemID      int64     `json:"itemId,omitempty"`
	PatronID    int64     `json:"patronId,omitempty"`
	Status      Status    `json:"status,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	DaysLate    int       `json:"daysLate,omitempty"`
	Count       int       `json:"count,omitempty"`
	TotalCopies int       `json:"totalCopies,omitempty"`
}
