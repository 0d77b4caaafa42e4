package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// withdrawalRequest is the shared shape of money and gold withdrawal
// requests. Status edits never touch the owner's wallet.
type withdrawalRequest struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID      `json:"-" gorm:"type:char(36);not null;index"`
	CreateDate time.Time      `json:"create_date" gorm:"index;not null"`
	Status     TradeStatus    `json:"status" gorm:"type:varchar(20);not null;default:'WAITING';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`

	StatusDisplay string `json:"status_display" gorm:"-"`
}

// MoneyWithdrawalRequest is a request to take money out of a wallet.
type MoneyWithdrawalRequest struct {
	withdrawalRequest
	MoneyAmount decimal.Decimal `json:"money_amount" gorm:"type:decimal(20,2);not null;default:0"`
}

// GoldWithdrawalRequest is a request to take gold out of a wallet.
type GoldWithdrawalRequest struct {
	withdrawalRequest
	GoldAmount decimal.Decimal `json:"gold_amount" gorm:"type:decimal(20,4);not null;default:0"`
}

// RecordID implements Resource.
func (r *withdrawalRequest) RecordID() uuid.UUID { return r.ID }

// OwnerID implements Owned.
func (r *withdrawalRequest) OwnerID() uuid.UUID { return r.UserID }

// SetOwner implements Owned.
func (r *withdrawalRequest) SetOwner(id uuid.UUID) { r.UserID = id }

// Present implements Resource.
func (r *withdrawalRequest) Present() { r.StatusDisplay = r.Status.Display() }

func (r *withdrawalRequest) beforeCreate() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreateDate.IsZero() {
		r.CreateDate = time.Now()
	}
}

// BeforeCreate sets UUID and defaults the request date before creating the record.
func (r *MoneyWithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	r.beforeCreate()
	return nil
}

// BeforeCreate sets UUID and defaults the request date before creating the record.
func (r *GoldWithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	r.beforeCreate()
	return nil
}
