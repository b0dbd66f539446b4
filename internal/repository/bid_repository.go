package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

// ErrRFQNotOpen is returned when a conditional status update finds the RFQ
// already closed. The acceptance path relies on it to keep the
// at-most-one-acceptance invariant under concurrent calls.
var ErrRFQNotOpen = errors.New("rfq is not open")

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, bid *model.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bid, error) {
	var bid model.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) GetByRFQAndFarmer(ctx context.Context, rfqID, farmerID uuid.UUID) (*model.Bid, error) {
	var bid model.Bid
	err := r.db.WithContext(ctx).First(&bid, "rfq_id = ? AND farmer_id = ?", rfqID, farmerID).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID).
		Order("score DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *BidRepository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// Accept performs the whole acceptance inside one transaction. The first
// statement conditionally closes the RFQ; zero affected rows means another
// acceptance already won and nothing else is touched. Audit rows ride the
// same transaction so the trail never disagrees with the state.
func (r *BidRepository) Accept(ctx context.Context, rfqID, bidID, actorID uuid.UUID) (*model.Bid, []model.Bid, error) {
	var accepted model.Bid
	var rejected []model.Bid

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE rfqs SET status = ?, updated_at = NOW()
			WHERE id = ? AND status = ?
		`, model.RFQStatusClosed, rfqID, model.RFQStatusOpen)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRFQNotOpen
		}

		if err := tx.Exec(`
			UPDATE bids SET status = ?, updated_at = NOW() WHERE id = ?
		`, model.BidStatusAccepted, bidID).Error; err != nil {
			return err
		}
		if err := tx.First(&accepted, "id = ?", bidID).Error; err != nil {
			return err
		}

		if err := tx.Where("rfq_id = ? AND id <> ?", rfqID, bidID).Find(&rejected).Error; err != nil {
			return err
		}
		if err := tx.Exec(`
			UPDATE bids SET status = ?, updated_at = NOW()
			WHERE rfq_id = ? AND id <> ?
		`, model.BidStatusRejected, rfqID, bidID).Error; err != nil {
			return err
		}
		for i := range rejected {
			rejected[i].Status = model.BidStatusRejected
		}

		entries := []model.AuditEntry{
			{
				ID:         uuid.New(),
				EntityType: model.AuditEntityBid,
				EntityID:   accepted.ID,
				EventType:  model.AuditBidAccepted,
				UserID:     &actorID,
				Details: map[string]string{
					"rfqId":        rfqID.String(),
					"farmerId":     accepted.FarmerID.String(),
					"pricePerUnit": fmt.Sprintf("%.4f", accepted.PricePerUnit),
				},
			},
			{
				ID:         uuid.New(),
				EntityType: model.AuditEntityRFQ,
				EntityID:   rfqID,
				EventType:  model.AuditRFQStatusChanged,
				UserID:     &actorID,
				Details: map[string]string{
					"oldStatus": string(model.RFQStatusOpen),
					"newStatus": string(model.RFQStatusClosed),
				},
			},
		}
		for _, bid := range rejected {
			entries = append(entries, model.AuditEntry{
				ID:         uuid.New(),
				EntityType: model.AuditEntityBid,
				EntityID:   bid.ID,
				EventType:  model.AuditBidRejected,
				UserID:     &actorID,
				Details: map[string]string{
					"rfqId":    rfqID.String(),
					"farmerId": bid.FarmerID.String(),
				},
			})
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &accepted, rejected, nil
}
