package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/domain"
)

type CheckoutAttemptRepository struct {
	db *gorm.DB
}

func NewCheckoutAttemptRepository(db *gorm.DB) *CheckoutAttemptRepository {
	return &CheckoutAttemptRepository{db: db}
}

type checkoutAttemptModel struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	ExperienceID   int64           `gorm:"column:experience_id;index"`
	SlotID         int64           `gorm:"column:slot_id"`
	CustomerEmail  string          `gorm:"column:customer_email"`
	NumberOfGuests int             `gorm:"column:number_of_guests"`
	PromoCode      *string         `gorm:"column:promo_code"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	Discount       decimal.Decimal `gorm:"column:discount;type:numeric(12,2)"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Success        bool            `gorm:"column:success"`
	BookingID      *int64          `gorm:"column:booking_id"`
	ErrorMessage   *string         `gorm:"column:error_message;type:text"`
	RequestID      string          `gorm:"column:request_id"`
	CreatedAt      time.Time       `gorm:"column:created_at;index"`
}

func (checkoutAttemptModel) TableName() string { return "checkout_attempts" }

// Models lists the row models owned by this package, for migrations.
func Models() []interface{} {
	return []interface{}{&checkoutAttemptModel{}}
}

// Migrate creates or updates the storefront's own tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainAttempt(m checkoutAttemptModel) *domain.CheckoutAttempt {
	return &domain.CheckoutAttempt{
		ID:             m.ID,
		ExperienceID:   m.ExperienceID,
		SlotID:         m.SlotID,
		CustomerEmail:  m.CustomerEmail,
		NumberOfGuests: m.NumberOfGuests,
		PromoCode:      deref(m.PromoCode),
		Subtotal:       m.Subtotal,
		Discount:       m.Discount,
		Total:          m.Total,
		Success:        m.Success,
		BookingID:      m.BookingID,
		ErrorMessage:   deref(m.ErrorMessage),
		RequestID:      m.RequestID,
		CreatedAt:      m.CreatedAt,
	}
}

func toAttemptModel(a *domain.CheckoutAttempt) checkoutAttemptModel {
	return checkoutAttemptModel{
		ID:             a.ID,
		ExperienceID:   a.ExperienceID,
		SlotID:         a.SlotID,
		CustomerEmail:  a.CustomerEmail,
		NumberOfGuests: a.NumberOfGuests,
		PromoCode:      optional(a.PromoCode),
		Subtotal:       a.Subtotal,
		Discount:       a.Discount,
		Total:          a.Total,
		Success:        a.Success,
		BookingID:      a.BookingID,
		ErrorMessage:   optional(a.ErrorMessage),
		RequestID:      a.RequestID,
		CreatedAt:      a.CreatedAt,
	}
}

func (r *CheckoutAttemptRepository) Create(ctx context.Context, a *domain.CheckoutAttempt) error {
	m := toAttemptModel(a)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.CreatedAt = m.CreatedAt.UTC()
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAttempt(m)
	return nil
}

// ListRecent returns the newest attempts first.
func (r *CheckoutAttemptRepository) ListRecent(ctx context.Context, limit int) ([]domain.CheckoutAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []checkoutAttemptModel
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.CheckoutAttempt, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAttempt(m))
	}
	return out, nil
}

// DeleteOlderThan removes attempts created before cutoff and reports how many went.
func (r *CheckoutAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&checkoutAttemptModel{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
