package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

const invoiceDueDays = 30

type OrderStore interface {
	CreateFromCart(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}

type InvoiceCreator interface {
	Create(ctx context.Context, invoice *model.Invoice) error
}

type OrderService struct {
	orders   OrderStore
	carts    CartStore
	products ProductGetter
	invoices InvoiceCreator
	now      func() time.Time
}

func NewOrderService(orders OrderStore, carts CartStore, products ProductGetter, invoices InvoiceCreator) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		invoices: invoices,
		now:      time.Now,
	}
}

type CheckoutInput struct {
	ShippingAddress model.Address
	PaymentMethod   string
	Principal       model.Principal
}

// Checkout turns the caller's cart into an order with item snapshots and
// clears the cart. Prices are read from the products at checkout time.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*model.Order, error) {
	addr := input.ShippingAddress
	if addr.Street == "" || addr.City == "" || addr.State == "" || addr.Zip == "" || addr.Country == "" {
		return nil, fmt.Errorf("%w: complete shipping address is required", ErrInvalidInput)
	}

	items, err := s.carts.GetItems(ctx, input.Principal.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "COD"
	}

	order := &model.Order{
		UserID:          input.Principal.ID,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentPending,
		OrderStatus:     model.OrderPending,
	}

	var total float64
	for _, item := range items {
		product := item.Product
		if product == nil {
			product, err = s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
		}
		if product.Quantity < item.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %q", ErrConflict, product.Title)
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			FarmerID:  product.FarmerID,
			Title:     product.Title,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Category:  product.Category,
		})
		total += product.Price * item.Quantity
	}
	order.TotalPrice = total

	if err := s.orders.CreateFromCart(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(order, principal) {
		return nil, ErrPermissionDenied
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, principal.ID)
}

var orderStatuses = map[model.OrderStatus]bool{
	model.OrderPending:    true,
	model.OrderProcessing: true,
	model.OrderShipped:    true,
	model.OrderDelivered:  true,
	model.OrderCancelled:  true,
}

// UpdateStatus moves the order along its lifecycle. The transition to
// Shipped raises the invoice, due thirty days out.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, principal model.Principal) (*model.Order, error) {
	if !orderStatuses[status] {
		return nil, fmt.Errorf("%w: invalid order status", ErrInvalidInput)
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && !s.farmerOnOrder(order, principal.ID) {
		return nil, ErrPermissionDenied
	}

	shippedNow := status == model.OrderShipped && order.OrderStatus != model.OrderShipped
	order.OrderStatus = status
	if status == model.OrderDelivered && order.DeliveredAt == nil {
		deliveredAt := s.now()
		order.DeliveredAt = &deliveredAt
	}

	if shippedNow && len(order.Items) > 0 {
		invoice := &model.Invoice{
			InvoiceNumber: fmt.Sprintf("INV-%d", s.now().UnixMilli()),
			UserID:        order.UserID,
			FarmerID:      order.Items[0].FarmerID,
			OrderID:       order.ID,
			Amount:        order.TotalPrice,
			Status:        model.InvoicePending,
			DueDate:       s.now().AddDate(0, 0, invoiceDueDays),
		}
		if err := s.invoices.Create(ctx, invoice); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) getOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) canAccess(order *model.Order, principal model.Principal) bool {
	if principal.IsAdmin() || order.UserID == principal.ID {
		return true
	}
	return s.farmerOnOrder(order, principal.ID)
}

func (s *OrderService) farmerOnOrder(order *model.Order, farmerID uuid.UUID) bool {
	for _, item := range order.Items {
		if item.FarmerID == farmerID {
			return true
		}
	}
	return false
}
