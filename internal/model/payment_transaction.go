package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a payment transaction.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Valid reports whether the status is one of the declared values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}

// Display returns the human-readable status label.
func (s PaymentStatus) Display() string {
	switch s {
	case PaymentStatusPending:
		return "Pending Payment"
	case PaymentStatusSuccess:
		return "Successful Payment"
	case PaymentStatusFailed:
		return "Failed Payment"
	}
	return string(s)
}

// PaymentTransaction represents an inbound money payment by a user.
// Status edits never touch the owner's wallet; settlement happens outside
// this system.
type PaymentTransaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	PaymentDate time.Time       `json:"payment_date" gorm:"index;not null"`
	MoneyAmount decimal.Decimal `json:"money_amount" gorm:"type:decimal(20,2);not null;default:0"`
	Status      PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`

	StatusDisplay string `json:"status_display" gorm:"-"`
}

// RecordID implements Resource.
func (t *PaymentTransaction) RecordID() uuid.UUID { return t.ID }

// OwnerID implements Owned.
func (t *PaymentTransaction) OwnerID() uuid.UUID { return t.UserID }

// SetOwner implements Owned.
func (t *PaymentTransaction) SetOwner(id uuid.UUID) { t.UserID = id }

// Present implements Resource.
func (t *PaymentTransaction) Present() { t.StatusDisplay = t.Status.Display() }

// BeforeCreate sets UUID and defaults the payment date before creating the record.
func (t *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.PaymentDate.IsZero() {
		t.PaymentDate = time.Now()
	}
	return nil
}
