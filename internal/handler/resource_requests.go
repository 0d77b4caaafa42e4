package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rezabhm/Gold-Online-Store/internal/errors"
	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

// parseOwner parses the owner field submitted on the admin surface.
func parseOwner(ref *string) (uuid.UUID, error) {
	if ref == nil {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(*ref)
	if err != nil {
		return uuid.Nil, errors.NewValidationError("user", "invalid user id")
	}
	return id, nil
}

func parseTradeStatus(s *string) (model.TradeStatus, error) {
	if s == nil {
		return "", nil
	}
	status := model.TradeStatus(*s)
	if !status.Valid() {
		return "", errors.NewValidationError("status", "unknown status")
	}
	return status, nil
}

// PaymentTransactionRequest is the payload for payment transactions.
type PaymentTransactionRequest struct {
	User        *string          `json:"user"`
	PaymentDate *time.Time       `json:"payment_date"`
	MoneyAmount *decimal.Decimal `json:"money_amount"`
	Status      *string          `json:"status"`
}

// OwnerRef implements ResourceRequest.
func (r *PaymentTransactionRequest) OwnerRef() *string { return r.User }

// Validate implements ResourceRequest.
func (r *PaymentTransactionRequest) Validate(partial bool) error {
	if !partial && r.MoneyAmount == nil {
		return errors.NewValidationError("money_amount", "money amount is required")
	}
	if r.MoneyAmount != nil {
		if err := validateMoney("money_amount", *r.MoneyAmount); err != nil {
			return err
		}
	}
	if r.Status != nil && !model.PaymentStatus(*r.Status).Valid() {
		return errors.NewValidationError("status", "unknown status")
	}
	return nil
}

// Apply implements ResourceRequest.
func (r *PaymentTransactionRequest) Apply(rec *model.PaymentTransaction, partial bool) error {
	owner, err := parseOwner(r.User)
	if err != nil {
		return err
	}
	if owner != uuid.Nil {
		rec.UserID = owner
	}
	if r.PaymentDate != nil {
		rec.PaymentDate = *r.PaymentDate
	}
	if r.MoneyAmount != nil {
		rec.MoneyAmount = *r.MoneyAmount
	}
	if r.Status != nil {
		rec.Status = model.PaymentStatus(*r.Status)
	} else if !partial && rec.Status == "" {
		rec.Status = model.PaymentStatusPending
	}
	return nil
}

// goldTransactionRequest is the payload shared by gold sale and purchase
// transactions.
type goldTransactionRequest struct {
	User        *string          `json:"user"`
	CreateDate  *time.Time       `json:"create_date"`
	MoneyAmount *decimal.Decimal `json:"money_amount"`
	GoldAmount  *decimal.Decimal `json:"gold_amount"`
	GoldPrice   *string          `json:"gold_price"`
	Status      *string          `json:"status"`
}

// OwnerRef implements ResourceRequest.
func (r *goldTransactionRequest) OwnerRef() *string { return r.User }

// Validate implements ResourceRequest.
func (r *goldTransactionRequest) Validate(partial bool) error {
	if !partial {
		if r.MoneyAmount == nil {
			return errors.NewValidationError("money_amount", "money amount is required")
		}
		if r.GoldAmount == nil {
			return errors.NewValidationError("gold_amount", "gold amount is required")
		}
		if r.GoldPrice == nil {
			return errors.NewValidationError("gold_price", "gold price is required")
		}
	}
	if r.MoneyAmount != nil {
		if err := validateMoney("money_amount", *r.MoneyAmount); err != nil {
			return err
		}
	}
	if r.GoldAmount != nil {
		if err := validateGold("gold_amount", *r.GoldAmount); err != nil {
			return err
		}
	}
	if _, err := parseTradeStatus(r.Status); err != nil {
		return err
	}
	return nil
}

func (r *goldTransactionRequest) apply(
	ownerID *uuid.UUID,
	createDate *time.Time,
	moneyAmount, goldAmount *decimal.Decimal,
	priceID *uuid.UUID,
	status *model.TradeStatus,
	partial bool,
) error {
	owner, err := parseOwner(r.User)
	if err != nil {
		return err
	}
	if owner != uuid.Nil {
		*ownerID = owner
	}
	if r.CreateDate != nil {
		*createDate = *r.CreateDate
	}
	if r.MoneyAmount != nil {
		*moneyAmount = *r.MoneyAmount
	}
	if r.GoldAmount != nil {
		*goldAmount = *r.GoldAmount
	}
	if r.GoldPrice != nil {
		id, err := uuid.Parse(*r.GoldPrice)
		if err != nil {
			return errors.NewValidationError("gold_price", "invalid gold price id")
		}
		*priceID = id
	}
	if r.Status != nil {
		*status = model.TradeStatus(*r.Status)
	} else if !partial && *status == "" {
		*status = model.TradeStatusWaiting
	}
	return nil
}

// GoldSaleTransactionRequest is the payload for gold sale transactions.
type GoldSaleTransactionRequest struct {
	goldTransactionRequest
}

// Apply implements ResourceRequest.
func (r *GoldSaleTransactionRequest) Apply(rec *model.GoldSaleTransaction, partial bool) error {
	return r.apply(&rec.UserID, &rec.CreateDate, &rec.MoneyAmount, &rec.GoldAmount, &rec.GoldPriceID, &rec.Status, partial)
}

// GoldPurchaseTransactionRequest is the payload for gold purchase transactions.
type GoldPurchaseTransactionRequest struct {
	goldTransactionRequest
}

// Apply implements ResourceRequest.
func (r *GoldPurchaseTransactionRequest) Apply(rec *model.GoldPurchaseTransaction, partial bool) error {
	return r.apply(&rec.UserID, &rec.CreateDate, &rec.MoneyAmount, &rec.GoldAmount, &rec.GoldPriceID, &rec.Status, partial)
}

// MoneyWithdrawalRequest is the payload for money withdrawal requests.
type MoneyWithdrawalRequest struct {
	User        *string          `json:"user"`
	CreateDate  *time.Time       `json:"create_date"`
	MoneyAmount *decimal.Decimal `json:"money_amount"`
	Status      *string          `json:"status"`
}

// OwnerRef implements ResourceRequest.
func (r *MoneyWithdrawalRequest) OwnerRef() *string { return r.User }

// Validate implements ResourceRequest.
func (r *MoneyWithdrawalRequest) Validate(partial bool) error {
	if !partial && r.MoneyAmount == nil {
		return errors.NewValidationError("money_amount", "money amount is required")
	}
	if r.MoneyAmount != nil {
		if err := validateMoney("money_amount", *r.MoneyAmount); err != nil {
			return err
		}
	}
	if _, err := parseTradeStatus(r.Status); err != nil {
		return err
	}
	return nil
}

// Apply implements ResourceRequest.
func (r *MoneyWithdrawalRequest) Apply(rec *model.MoneyWithdrawalRequest, partial bool) error {
	owner, err := parseOwner(r.User)
	if err != nil {
		return err
	}
	if owner != uuid.Nil {
		rec.UserID = owner
	}
	if r.CreateDate != nil {
		rec.CreateDate = *r.CreateDate
	}
	if r.MoneyAmount != nil {
		rec.MoneyAmount = *r.MoneyAmount
	}
	if r.Status != nil {
		rec.Status = model.TradeStatus(*r.Status)
	} else if !partial && rec.Status == "" {
		rec.Status = model.TradeStatusWaiting
	}
	return nil
}

// GoldWithdrawalRequest is the payload for gold withdrawal requests.
type GoldWithdrawalRequest struct {
	User       *string          `json:"user"`
	CreateDate *time.Time       `json:"create_date"`
	GoldAmount *decimal.Decimal `json:"gold_amount"`
	Status     *string          `json:"status"`
}

// OwnerRef implements ResourceRequest.
func (r *GoldWithdrawalRequest) OwnerRef() *string { return r.User }

// Validate implements ResourceRequest.
func (r *GoldWithdrawalRequest) Validate(partial bool) error {
	if !partial && r.GoldAmount == nil {
		return errors.NewValidationError("gold_amount", "gold amount is required")
	}
	if r.GoldAmount != nil {
		if err := validateGold("gold_amount", *r.GoldAmount); err != nil {
			return err
		}
	}
	if _, err := parseTradeStatus(r.Status); err != nil {
		return err
	}
	return nil
}

// Apply implements ResourceRequest.
func (r *GoldWithdrawalRequest) Apply(rec *model.GoldWithdrawalRequest, partial bool) error {
	owner, err := parseOwner(r.User)
	if err != nil {
		return err
	}
	if owner != uuid.Nil {
		rec.UserID = owner
	}
	if r.CreateDate != nil {
		rec.CreateDate = *r.CreateDate
	}
	if r.GoldAmount != nil {
		rec.GoldAmount = *r.GoldAmount
	}
	if r.Status != nil {
		rec.Status = model.TradeStatus(*r.Status)
	} else if !partial && rec.Status == "" {
		rec.Status = model.TradeStatusWaiting
	}
	return nil
}
