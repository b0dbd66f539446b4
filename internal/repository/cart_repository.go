package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	for i := range items {
		var product model.Product
		if err := r.db.WithContext(ctx).First(&product, "id = ?", items[i].ProductID).Error; err == nil {
			items[i].Product = &product
		}
	}
	return items, nil
}

// Upsert sets the quantity for the (user, product) pair, inserting the row
// if it does not exist yet.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity float64) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, uuid.New(), userID, productID, quantity).Error
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
