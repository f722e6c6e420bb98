package workshop

import (
	"time"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobCardStatus is the workshop status of a job card
type JobCardStatus string

const (
	JobCardInProgress JobCardStatus = "in_progress"
	JobCardCompleted  JobCardStatus = "completed"
	JobCardInvoiced   JobCardStatus = "invoiced"
)

// JobCard is a workshop work order owned by an external module. The
// finalization engine only consumes it as a lock target: when a linked
// invoice finalizes, the card locks and moves to invoiced, in the same
// atomic unit as the invoice commit.
type JobCard struct {
	shared.BaseEntity
	Number       string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   *uuid.UUID    `gorm:"type:uuid;index"`
	CustomerName string        `gorm:"type:varchar(200);not null"`
	Status       JobCardStatus `gorm:"type:varchar(20);not null;default:'in_progress'"`
	Locked       bool          `gorm:"not null;default:false"`
	LockedAt     *time.Time
	LockedBy     *uuid.UUID `gorm:"type:uuid"`
	InvoiceID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (JobCard) TableName() string {
	return "job_cards"
}

// NewJobCard creates a job card in progress
func NewJobCard(number string, customerID *uuid.UUID, customerName string) (*JobCard, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Job card number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &JobCard{
		BaseEntity:   shared.NewBaseEntity(),
		Number:       number,
		CustomerID:   customerID,
		CustomerName: customerName,
		Status:       JobCardInProgress,
	}, nil
}

// Lock locks the card against further workshop edits and records the
// finalized invoice that caused it. Locking is one-way.
func (j *JobCard) Lock(by uuid.UUID, invoiceID uuid.UUID) error {
	if j.Locked {
		return shared.NewDomainError("ALREADY_LOCKED", "Job card is already locked")
	}

	now := time.Now()
	j.Locked = true
	j.LockedAt = &now
	j.LockedBy = &by
	j.InvoiceID = &invoiceID
	j.Status = JobCardInvoiced
	j.UpdatedAt = now

	return nil
}
