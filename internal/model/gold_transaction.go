package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeStatus represents the status of a gold transaction or a
// withdrawal request.
type TradeStatus string

const (
	TradeStatusAccepted TradeStatus = "ACCEPTED"
	TradeStatusWaiting  TradeStatus = "WAITING"
	TradeStatusRejected TradeStatus = "REJECTED"
)

// Valid reports whether the status is one of the declared values.
func (s TradeStatus) Valid() bool {
	switch s {
	case TradeStatusAccepted, TradeStatusWaiting, TradeStatusRejected:
		return true
	}
	return false
}

// Display returns the human-readable status label.
func (s TradeStatus) Display() string {
	switch s {
	case TradeStatusAccepted:
		return "Accepted"
	case TradeStatusWaiting:
		return "Waiting"
	case TradeStatusRejected:
		return "Rejected"
	}
	return string(s)
}

// goldTransaction is the shared shape of sale and purchase transactions.
// The referenced gold price must be active when the transaction is created.
type goldTransaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	CreateDate  time.Time       `json:"create_date" gorm:"index;not null"`
	MoneyAmount decimal.Decimal `json:"money_amount" gorm:"type:decimal(20,2);not null;default:0"`
	GoldAmount  decimal.Decimal `json:"gold_amount" gorm:"type:decimal(20,4);not null;default:0"`
	GoldPriceID uuid.UUID       `json:"-" gorm:"type:char(36);not null;index"`
	Status      TradeStatus     `json:"status" gorm:"type:varchar(20);not null;default:'WAITING';index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	GoldPrice GoldPrice `json:"gold_price" gorm:"foreignKey:GoldPriceID;constraint:OnDelete:RESTRICT"`

	StatusDisplay string `json:"status_display" gorm:"-"`
}

// GoldSaleTransaction records a user selling gold to the platform.
type GoldSaleTransaction struct {
	goldTransaction
}

// GoldPurchaseTransaction records a user buying gold from the platform.
type GoldPurchaseTransaction struct {
	goldTransaction
}

// RecordID implements Resource.
func (t *goldTransaction) RecordID() uuid.UUID { return t.ID }

// OwnerID implements Owned.
func (t *goldTransaction) OwnerID() uuid.UUID { return t.UserID }

// SetOwner implements Owned.
func (t *goldTransaction) SetOwner(id uuid.UUID) { t.UserID = id }

// Present implements Resource.
func (t *goldTransaction) Present() { t.StatusDisplay = t.Status.Display() }

// PriceID returns the referenced gold price id.
func (t *goldTransaction) PriceID() uuid.UUID { return t.GoldPriceID }

func (t *goldTransaction) beforeCreate() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreateDate.IsZero() {
		t.CreateDate = time.Now()
	}
}

// BeforeCreate sets UUID and defaults the create date before creating the record.
func (t *GoldSaleTransaction) BeforeCreate(tx *gorm.DB) error {
	t.beforeCreate()
	return nil
}

// BeforeCreate sets UUID and defaults the create date before creating the record.
func (t *GoldPurchaseTransaction) BeforeCreate(tx *gorm.DB) error {
	t.beforeCreate()
	return nil
}
