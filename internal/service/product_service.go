package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type ProductStore interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Save(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	DistinctTitles(ctx context.Context) ([]string, error)
}

type ProductService struct {
	products ProductStore
	users    SummaryStore
}

func NewProductService(products ProductStore, users SummaryStore) *ProductService {
	return &ProductService{products: products, users: users}
}

type ProductInput struct {
	Title       string
	Description string
	Category    string
	Subcategory string
	Origin      string
	Price       float64
	Currency    string
	Discount    float64
	Unit        string
	Quantity    float64
	MOQ         float64
	HarvestDate time.Time
	ShelfLife   string
	Grade       string
	Packaging   string
	SKU         string
	Images      []string
}

func (s *ProductService) Create(ctx context.Context, input ProductInput, principal model.Principal) (*model.Product, error) {
	if !principal.IsFarmer() {
		return nil, ErrPermissionDenied
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &model.Product{
		FarmerID:    principal.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Origin:      input.Origin,
		Price:       input.Price,
		Currency:    input.Currency,
		Discount:    input.Discount,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		MOQ:         input.MOQ,
		HarvestDate: input.HarvestDate,
		ShelfLife:   input.ShelfLife,
		Grade:       input.Grade,
		Packaging:   input.Packaging,
		SKU:         input.SKU,
		Images:      input.Images,
		Status:      model.ProductActive,
		Published:   true,
	}
	if product.MOQ <= 0 {
		product.MOQ = 1
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListMine returns the farmer's own products; ListAll is the public
// marketplace view with farmer summaries attached.
func (s *ProductService) ListMine(ctx context.Context, keyword string, principal model.Principal) ([]model.Product, error) {
	return s.products.List(ctx, repository.ProductFilter{
		FarmerID: principal.ID,
		Keyword:  keyword,
	})
}

func (s *ProductService) ListAll(ctx context.Context, keyword string) ([]model.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{
		Keyword:       keyword,
		PublishedOnly: true,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.FarmerID)
	}
	summaries, err := s.users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if summary, ok := summaries[products[i].FarmerID]; ok {
			products[i].Farmer = &summary
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if product.FarmerID != principal.ID && !principal.IsAdmin() && !product.Published {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}

	summaries, err := s.users.SummariesByIDs(ctx, []uuid.UUID{product.FarmerID})
	if err != nil {
		return nil, err
	}
	if summary, ok := summaries[product.FarmerID]; ok {
		product.Farmer = &summary
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input ProductInput, principal model.Principal) (*model.Product, error) {
	product, err := s.getOwned(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Category = input.Category
	product.Subcategory = input.Subcategory
	product.Origin = input.Origin
	product.Price = input.Price
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	product.Discount = input.Discount
	product.Unit = input.Unit
	product.Quantity = input.Quantity
	if input.MOQ > 0 {
		product.MOQ = input.MOQ
	}
	product.HarvestDate = input.HarvestDate
	product.ShelfLife = input.ShelfLife
	product.Grade = input.Grade
	product.Packaging = input.Packaging
	product.SKU = input.SKU
	if input.Images != nil {
		product.Images = input.Images
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProductStatus, principal model.Principal) (*model.Product, error) {
	if status != model.ProductActive && status != model.ProductInactive {
		return nil, fmt.Errorf("%w: invalid product status", ErrInvalidInput)
	}
	product, err := s.getOwned(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	product.Status = status
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) TogglePublish(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Product, error) {
	product, err := s.getOwned(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	product.Published = !product.Published
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if _, err := s.getOwned(ctx, id, principal); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) Titles(ctx context.Context) ([]string, error) {
	return s.products.DistinctTitles(ctx)
}

func (s *ProductService) getOwned(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if product.FarmerID != principal.ID {
		return nil, ErrPermissionDenied
	}
	return product, nil
}

func validateProductInput(input ProductInput) error {
	if input.Title == "" || input.Description == "" {
		return fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}
	if !contains(model.ProductCategories, input.Category) {
		return fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}
	if !contains(model.ProductUnits, input.Unit) {
		return fmt.Errorf("%w: invalid unit", ErrInvalidInput)
	}
	if !contains(model.ProductGrades, input.Grade) {
		return fmt.Errorf("%w: invalid grade", ErrInvalidInput)
	}
	if input.Price < 0 || input.Quantity < 0 {
		return fmt.Errorf("%w: price and quantity must not be negative", ErrInvalidInput)
	}
	if input.HarvestDate.IsZero() {
		return fmt.Errorf("%w: harvest date is required", ErrInvalidInput)
	}
	if input.Packaging == "" {
		return fmt.Errorf("%w: packaging is required", ErrInvalidInput)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
