package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sanity ceilings for submitted amounts. They reject implausible input,
// they are not business limits.
var (
	// MaxMoneyAmount is the largest accepted money value (10^12).
	MaxMoneyAmount = decimal.New(1, 12)
	// MaxGoldAmount is the largest accepted gold quantity in grams (10^6).
	MaxGoldAmount = decimal.New(1, 6)
)

// Wallet holds a user's money and gold balances. Each user owns exactly
// one wallet; it is removed together with the user.
type Wallet struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID       `json:"-" gorm:"type:char(36);uniqueIndex;not null"`
	MoneyStock decimal.Decimal `json:"money_stock" gorm:"type:decimal(20,2);not null;default:0"`
	GoldStock  decimal.Decimal `json:"gold_stock" gorm:"type:decimal(20,4);not null;default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Derived fields, computed on every read and never persisted.
	TotalValue      decimal.Decimal `json:"total_value" gorm:"-"`
	LatestGoldPrice *GoldPrice      `json:"latest_gold_price" gorm:"-"`
}

// TotalValueAt values the wallet against the given price. A nil price
// values gold at zero.
func (w *Wallet) TotalValueAt(price *GoldPrice) decimal.Decimal {
	if price == nil {
		return w.MoneyStock
	}
	return w.MoneyStock.Add(w.GoldStock.Mul(price.SalePrice))
}

// OwnerID implements Owned.
func (w *Wallet) OwnerID() uuid.UUID { return w.UserID }

// SetOwner implements Owned.
func (w *Wallet) SetOwner(id uuid.UUID) { w.UserID = id }

// BeforeCreate sets UUID before creating the record.
func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
