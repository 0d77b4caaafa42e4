package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezabhm/Gold-Online-Store/internal/model"
)

func TestGoldPriceRepository_SingleActive(t *testing.T) {
	db := newTestDB(t, &model.GoldPrice{})
	repo := NewGoldPriceRepository(db)
	ctx := context.Background()

	countActive := func() int64 {
		var n int64
		require.NoError(t, db.Model(&model.GoldPrice{}).Where("active = ?", true).Count(&n).Error)
		return n
	}
	day := func(offset int) time.Time {
		return time.Date(2026, 1, 1+offset, 0, 0, 0, 0, time.UTC)
	}

	first := &model.GoldPrice{
		Date:        day(0),
		SalePrice:   decimal.RequireFromString("2400000"),
		StockStatus: true,
		Active:      true,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.GoldPrice{
		Date:        day(1),
		SalePrice:   decimal.RequireFromString("2450000"),
		StockStatus: true,
		Active:      true,
	}
	require.NoError(t, repo.Create(ctx, second))

	third := &model.GoldPrice{
		Date:        day(2),
		SalePrice:   decimal.RequireFromString("2500000"),
		StockStatus: true,
		Active:      true,
	}
	require.NoError(t, repo.Create(ctx, third))

	// Each activating insert clears every other row in the same
	// transaction; exactly one row may stay active.
	assert.EqualValues(t, 1, countActive())
	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, third.ID, active.ID)

	// Re-activating an older record moves the flag over to it.
	first.Active = true
	require.NoError(t, repo.Save(ctx, first))
	assert.EqualValues(t, 1, countActive())
	active, err = repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	// Saving a record without touching the flag changes nothing.
	first.SalePrice = decimal.RequireFromString("2410000")
	require.NoError(t, repo.Save(ctx, first))
	assert.EqualValues(t, 1, countActive())
	active, err = repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}
