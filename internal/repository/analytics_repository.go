package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) TotalSpend(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE user_id = ?
	`, userID).Scan(&total).Error
	return total, err
}

func (r *AnalyticsRepository) OrderCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE user_id = ?
	`, userID).Scan(&count).Error
	return count, err
}

// AverageUnitPrice returns the quantity-weighted average item price over
// the buyer's orders created in [from, to).
func (r *AnalyticsRepository) AverageUnitPrice(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	var row struct {
		TotalValue float64
		TotalItems float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(oi.price * oi.quantity), 0) AS total_value,
			COALESCE(SUM(oi.quantity), 0) AS total_items
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = ?
			AND o.created_at >= ?
			AND o.created_at < ?
	`, userID, from, to).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.TotalItems == 0 {
		return 0, nil
	}
	return row.TotalValue / row.TotalItems, nil
}

type SupplierSpend struct {
	FarmerID   uuid.UUID `json:"farmerId"`
	FarmerName string    `json:"farmerName"`
	TotalValue float64   `json:"totalValue"`
}

func (r *AnalyticsRepository) TopSupplier(ctx context.Context, userID uuid.UUID) (*SupplierSpend, error) {
	var row SupplierSpend
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.farmer_id,
			farmer.full_name AS farmer_name,
			SUM(oi.price * oi.quantity) AS total_value
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN users farmer ON farmer.id = oi.farmer_id
		WHERE o.user_id = ?
		GROUP BY oi.farmer_id, farmer.full_name
		ORDER BY total_value DESC
		LIMIT 1
	`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.FarmerID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

type CategorySpend struct {
	Category   string  `json:"category"`
	TotalValue float64 `json:"totalValue"`
	TotalItems float64 `json:"totalItems"`
	OrderCount int64   `json:"orderCount"`
}

func (r *AnalyticsRepository) SpendByCategory(ctx context.Context, userID uuid.UUID) ([]CategorySpend, error) {
	var rows []CategorySpend
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.category,
			SUM(oi.price * oi.quantity) AS total_value,
			SUM(oi.quantity) AS total_items,
			COUNT(DISTINCT o.id) AS order_count
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = ?
		GROUP BY oi.category
		ORDER BY total_value DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) FarmerOrderCountSince(ctx context.Context, farmerID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.farmer_id = ? AND o.created_at >= ?
	`, farmerID, since).Scan(&count).Error
	return count, err
}

func (r *AnalyticsRepository) FarmerPendingOrderCount(ctx context.Context, farmerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.farmer_id = ? AND o.order_status = ?
	`, farmerID, model.OrderPending).Scan(&count).Error
	return count, err
}

func (r *AnalyticsRepository) FarmerRevenueSince(ctx context.Context, farmerID uuid.UUID, since time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(oi.price * oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.farmer_id = ?
			AND o.payment_status = ?
			AND o.created_at >= ?
	`, farmerID, model.PaymentPaid, since).Scan(&revenue).Error
	return revenue, err
}

func (r *AnalyticsRepository) FarmerAvailableStock(ctx context.Context, farmerID uuid.UUID) (float64, error) {
	var stock float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) FROM products WHERE farmer_id = ?
	`, farmerID).Scan(&stock).Error
	return stock, err
}

func (r *AnalyticsRepository) FarmerPaymentIssueCount(ctx context.Context, farmerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.farmer_id = ? AND o.payment_status = ?
	`, farmerID, model.PaymentFailed).Scan(&count).Error
	return count, err
}

func (r *AnalyticsRepository) FarmerLowStockProducts(ctx context.Context, farmerID uuid.UUID, threshold float64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("farmer_id = ? AND quantity <= ?", farmerID, threshold).
		Order("quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
