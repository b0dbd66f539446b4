package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

type InvoiceFilter struct {
	UserID uuid.UUID
	Status model.InvoiceStatus
	Search string
}

func (r *InvoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	baseQuery := `
		SELECT i.*
		FROM invoices i
		JOIN users farmer ON farmer.id = i.farmer_id
		WHERE i.user_id = ?
	`
	args := []interface{}{filter.UserID}

	if filter.Status != "" {
		baseQuery += " AND i.status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		baseQuery += " AND (LOWER(i.invoice_number) LIKE ? OR LOWER(farmer.full_name) LIKE ?)"
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}
	baseQuery += " ORDER BY i.created_at DESC"

	var invoices []model.Invoice
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
