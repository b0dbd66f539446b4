package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type CartStore interface {
	GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	Upsert(ctx context.Context, userID, productID uuid.UUID, quantity float64) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type ProductGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

type CartService struct {
	carts    CartStore
	products ProductGetter
}

func NewCartService(carts CartStore, products ProductGetter) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	items, err := s.carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.Cart{Items: items}, nil
}

// SetItem sets the quantity for a product in the cart, adding the line if
// it is not there yet.
func (s *CartService) SetItem(ctx context.Context, userID, productID uuid.UUID, quantity float64) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if product.MOQ > 0 && quantity < product.MOQ {
		return nil, fmt.Errorf("%w: quantity below minimum order quantity of %g", ErrInvalidInput, product.MOQ)
	}

	if err := s.carts.Upsert(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error) {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}
