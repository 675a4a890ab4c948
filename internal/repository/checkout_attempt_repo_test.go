package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"storefront/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:checkout_attempts_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestCheckoutAttemptRepository_CreateAndList(t *testing.T) {
	repo := NewCheckoutAttemptRepository(setupDB(t))
	ctx := context.Background()
	bookingID := int64(77)

	first := &domain.CheckoutAttempt{
		ExperienceID:   1,
		SlotID:         2,
		CustomerEmail:  "ann@example.com",
		NumberOfGuests: 2,
		PromoCode:      "SAVE30",
		Subtotal:       decimal.NewFromInt(200),
		Discount:       decimal.NewFromInt(30),
		Total:          decimal.NewFromInt(170),
		Success:        true,
		BookingID:      &bookingID,
		RequestID:      "req-1",
		CreatedAt:      time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &domain.CheckoutAttempt{
		ExperienceID:   1,
		SlotID:         3,
		CustomerEmail:  "bob@example.com",
		NumberOfGuests: 1,
		Subtotal:       decimal.NewFromInt(100),
		Total:          decimal.NewFromInt(100),
		ErrorMessage:   "Not enough spots available",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "bob@example.com", got[0].CustomerEmail)
	assert.False(t, got[0].Success)
	assert.Equal(t, "Not enough spots available", got[0].ErrorMessage)
	assert.Nil(t, got[0].BookingID)
	assert.Empty(t, got[0].PromoCode)

	assert.Equal(t, "SAVE30", got[1].PromoCode)
	require.NotNil(t, got[1].BookingID)
	assert.Equal(t, int64(77), *got[1].BookingID)
	assert.True(t, decimal.NewFromInt(170).Equal(got[1].Total))
}

func TestCheckoutAttemptRepository_DeleteOlderThan(t *testing.T) {
	repo := NewCheckoutAttemptRepository(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	for _, age := range []time.Duration{100 * 24 * time.Hour, 95 * 24 * time.Hour, time.Hour} {
		require.NoError(t, repo.Create(ctx, &domain.CheckoutAttempt{
			ExperienceID: 1,
			SlotID:       1,
			CreatedAt:    now.Add(-age),
		}))
	}

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
