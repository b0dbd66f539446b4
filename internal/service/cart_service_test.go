package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmkart/farmkart-api/internal/model"
)

func newCartTestService() (*CartService, *fakeCartStore, *fakeProductGetter) {
	carts := newFakeCartStore()
	products := newFakeProductGetter()
	return NewCartService(carts, products), carts, products
}

func TestSetCartItem(t *testing.T) {
	svc, _, products := newCartTestService()
	userID := uuid.New()

	product := &model.Product{ID: uuid.New(), Title: "Spinach", Price: 12, MOQ: 2}
	products.products[product.ID] = product

	cart, err := svc.SetItem(context.Background(), userID, product.ID, 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5.0, cart.Items[0].Quantity)

	// Setting again replaces the quantity instead of adding a line.
	cart, err = svc.SetItem(context.Background(), userID, product.ID, 8)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 8.0, cart.Items[0].Quantity)
}

func TestSetCartItemBelowMOQ(t *testing.T) {
	svc, _, products := newCartTestService()

	product := &model.Product{ID: uuid.New(), Title: "Rice", Price: 40, MOQ: 25}
	products.products[product.ID] = product

	_, err := svc.SetItem(context.Background(), uuid.New(), product.ID, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetCartItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartTestService()

	_, err := svc.SetItem(context.Background(), uuid.New(), uuid.New(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveCartItem(t *testing.T) {
	svc, _, products := newCartTestService()
	userID := uuid.New()

	product := &model.Product{ID: uuid.New(), Title: "Okra", Price: 18}
	products.products[product.ID] = product

	_, err := svc.SetItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(context.Background(), userID, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartNeverReturnsNilItems(t *testing.T) {
	svc, _, _ := newCartTestService()

	cart, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}
