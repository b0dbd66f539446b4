package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type InvoiceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter repository.InvoiceFilter) ([]model.Invoice, error)
}

type InvoicePDFRenderer interface {
	RenderInvoice(invoice *model.Invoice) ([]byte, error)
}

type InvoiceService struct {
	invoices InvoiceStore
	orders   OrderStore
	users    SummaryStore
	pdf      InvoicePDFRenderer
}

func NewInvoiceService(invoices InvoiceStore, orders OrderStore, users SummaryStore, pdf InvoicePDFRenderer) *InvoiceService {
	return &InvoiceService{invoices: invoices, orders: orders, users: users, pdf: pdf}
}

type ListInvoicesInput struct {
	Status    model.InvoiceStatus
	Search    string
	Principal model.Principal
}

func (s *InvoiceService) List(ctx context.Context, input ListInvoicesInput) ([]model.Invoice, error) {
	invoices, err := s.invoices.List(ctx, repository.InvoiceFilter{
		UserID: input.Principal.ID,
		Status: input.Status,
		Search: input.Search,
	})
	if err != nil {
		return nil, err
	}

	farmerIDs := make([]uuid.UUID, 0, len(invoices))
	for _, invoice := range invoices {
		farmerIDs = append(farmerIDs, invoice.FarmerID)
	}
	summaries, err := s.users.SummariesByIDs(ctx, farmerIDs)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if summary, ok := summaries[invoices[i].FarmerID]; ok {
			invoices[i].Farmer = &summary
		}
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Invoice, error) {
	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && invoice.UserID != principal.ID && invoice.FarmerID != principal.ID {
		return nil, ErrPermissionDenied
	}
	return s.attachDetails(ctx, invoice)
}

// PDF loads the invoice with its parties and order lines and renders it.
func (s *InvoiceService) PDF(ctx context.Context, id uuid.UUID, principal model.Principal) ([]byte, string, error) {
	invoice, err := s.Get(ctx, id, principal)
	if err != nil {
		return nil, "", err
	}
	data, err := s.pdf.RenderInvoice(invoice)
	if err != nil {
		return nil, "", fmt.Errorf("render invoice pdf: %w", err)
	}
	return data, fmt.Sprintf("%s.pdf", invoice.InvoiceNumber), nil
}

func (s *InvoiceService) getInvoice(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice", ErrNotFound)
		}
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) attachDetails(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error) {
	summaries, err := s.users.SummariesByIDs(ctx, []uuid.UUID{invoice.FarmerID, invoice.UserID})
	if err != nil {
		return nil, err
	}
	if summary, ok := summaries[invoice.FarmerID]; ok {
		invoice.Farmer = &summary
	}
	if summary, ok := summaries[invoice.UserID]; ok {
		invoice.Buyer = &summary
	}

	order, err := s.orders.GetByID(ctx, invoice.OrderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	invoice.Order = order
	return invoice, nil
}
