package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type RFQRepository struct {
	db *gorm.DB
}

func NewRFQRepository(db *gorm.DB) *RFQRepository {
	return &RFQRepository{db: db}
}

func (r *RFQRepository) Create(ctx context.Context, rfq *model.RFQ) error {
	if rfq.ID == uuid.Nil {
		rfq.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(rfq).Error
}

func (r *RFQRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RFQ, error) {
	var rfq model.RFQ
	if err := r.db.WithContext(ctx).First(&rfq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rfq, nil
}

type RFQSort string

const (
	RFQSortNewest        RFQSort = "newest"
	RFQSortDeadline      RFQSort = "deliveryDeadline"
	RFQSortQuantityAsc   RFQSort = "quantity"
	RFQSortQuantityDesc  RFQSort = "-quantity"
	RFQSortByBuyerRating RFQSort = "-buyerRating"
)

type RFQFilter struct {
	BuyerID  uuid.UUID
	Type     model.RFQType
	Status   model.RFQStatus
	Keyword  string
	Category string
	Region   string
	Sort     RFQSort
	Page     int
	PageSize int
}

func (r *RFQRepository) List(ctx context.Context, filter RFQFilter) ([]model.RFQ, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.RFQ{})

	if filter.BuyerID != uuid.Nil {
		query = query.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		query = query.Where("LOWER(product) LIKE ?", "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case RFQSortDeadline:
		query = query.Order("delivery_deadline ASC")
	case RFQSortQuantityAsc:
		query = query.Order("quantity ASC")
	case RFQSortQuantityDesc:
		query = query.Order("quantity DESC")
	case RFQSortByBuyerRating:
		query = query.
			Joins("JOIN users buyer ON buyer.id = rfqs.buyer_id").
			Order("buyer.rating DESC")
	default:
		query = query.Order("rfqs.created_at DESC")
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset(filter.PageSize * (page - 1))
	}

	var rfqs []model.RFQ
	if err := query.Find(&rfqs).Error; err != nil {
		return nil, 0, err
	}
	return rfqs, count, nil
}

func (r *RFQRepository) DistinctRegions(ctx context.Context) ([]string, error) {
	var regions []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT region FROM rfqs
		WHERE region IS NOT NULL AND region <> ''
		ORDER BY region
	`).Scan(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}
