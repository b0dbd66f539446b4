package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmkart/farmkart-api/internal/model"
)

type orderTestEnv struct {
	svc      *OrderService
	orders   *fakeOrderStore
	carts    *fakeCartStore
	products *fakeProductGetter
	invoices *fakeInvoiceCreator
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	env := &orderTestEnv{
		orders:   newFakeOrderStore(),
		carts:    newFakeCartStore(),
		products: newFakeProductGetter(),
		invoices: &fakeInvoiceCreator{},
	}
	env.svc = NewOrderService(env.orders, env.carts, env.products, env.invoices)
	env.svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return env
}

func (env *orderTestEnv) addProduct(farmerID uuid.UUID, title string, price, stock float64) *model.Product {
	product := &model.Product{
		ID:       uuid.New(),
		FarmerID: farmerID,
		Title:    title,
		Category: "vegetables",
		Price:    price,
		Quantity: stock,
	}
	env.products.products[product.ID] = product
	return product
}

func shippingAddress() model.Address {
	return model.Address{
		Street:  "12 Market Road",
		City:    "Pune",
		State:   "MH",
		Zip:     "411001",
		Country: "India",
	}
}

func TestCheckout(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}
	farmerID := uuid.New()

	tomatoes := env.addProduct(farmerID, "Tomatoes", 30, 100)
	onions := env.addProduct(farmerID, "Onions", 20, 100)
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, tomatoes.ID, 10))
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, onions.ID, 5))

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.OrderStatus)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)
	assert.Equal(t, "COD", order.PaymentMethod)
	assert.InDelta(t, 30*10+20*5, order.TotalPrice, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, farmerID, order.Items[0].FarmerID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckoutIncompleteAddress(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}

	addr := shippingAddress()
	addr.Zip = ""
	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: addr,
		Principal:       buyer,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}

	product := env.addProduct(uuid.New(), "Mangoes", 80, 3)
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, product.ID, 10))

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateStatusToShippedRaisesInvoice(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}
	farmerID := uuid.New()

	product := env.addProduct(farmerID, "Potatoes", 15, 200)
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, product.ID, 40))

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	require.NoError(t, err)

	farmer := model.Principal{ID: farmerID, Role: model.RoleFarmer}
	updated, err := env.svc.UpdateStatus(context.Background(), order.ID, model.OrderShipped, farmer)
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, updated.OrderStatus)

	require.Len(t, env.invoices.invoices, 1)
	invoice := env.invoices.invoices[0]
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"), invoice.InvoiceNumber)
	assert.Equal(t, buyer.ID, invoice.UserID)
	assert.Equal(t, farmerID, invoice.FarmerID)
	assert.InDelta(t, order.TotalPrice, invoice.Amount, 1e-9)
	assert.Equal(t, model.InvoicePending, invoice.Status)
	assert.Equal(t, env.svc.now().AddDate(0, 0, 30), invoice.DueDate)

	// A second transition to Shipped must not raise a second invoice.
	_, err = env.svc.UpdateStatus(context.Background(), order.ID, model.OrderShipped, farmer)
	require.NoError(t, err)
	assert.Len(t, env.invoices.invoices, 1)
}

func TestUpdateStatusPermissions(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}

	product := env.addProduct(uuid.New(), "Carrots", 25, 50)
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, product.ID, 5))

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	require.NoError(t, err)

	otherFarmer := model.Principal{ID: uuid.New(), Role: model.RoleFarmer}
	_, err = env.svc.UpdateStatus(context.Background(), order.ID, model.OrderProcessing, otherFarmer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.svc.UpdateStatus(context.Background(), order.ID, "Teleported", model.Principal{ID: uuid.New(), Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrderAccess(t *testing.T) {
	env := newOrderTestEnv(t)
	buyer := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}
	farmerID := uuid.New()

	product := env.addProduct(farmerID, "Wheat", 22, 500)
	require.NoError(t, env.carts.Upsert(context.Background(), buyer.ID, product.ID, 100))

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		ShippingAddress: shippingAddress(),
		Principal:       buyer,
	})
	require.NoError(t, err)

	_, err = env.svc.Get(context.Background(), order.ID, buyer)
	assert.NoError(t, err)

	_, err = env.svc.Get(context.Background(), order.ID, model.Principal{ID: farmerID, Role: model.RoleFarmer})
	assert.NoError(t, err)

	_, err = env.svc.Get(context.Background(), order.ID, model.Principal{ID: uuid.New(), Role: model.RoleCustomer})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
