package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoldPrice is a published gold price record. At most one record is
// active at any time; the active one drives wallet valuation.
type GoldPrice struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Date            time.Time       `json:"date" gorm:"index;not null"`
	SalePrice       decimal.Decimal `json:"sale_price" gorm:"type:decimal(20,2);not null;default:0"`
	PriceDifference decimal.Decimal `json:"price_difference" gorm:"type:decimal(20,2);not null;default:0"`
	TotalGoldStock  decimal.Decimal `json:"total_gold_stock" gorm:"type:decimal(20,4);not null;default:0"`
	StockStatus     bool            `json:"stock_status" gorm:"default:true"`
	Active          bool            `json:"active" gorm:"default:true;index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID and defaults the price date before creating the record.
func (p *GoldPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}
