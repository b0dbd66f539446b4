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

const (
	priceTrendWindow  = 30 * 24 * time.Hour
	lowStockThreshold = 5.0
	dashboardRecent   = 5
)

type AnalyticsStore interface {
	TotalSpend(ctx context.Context, userID uuid.UUID) (float64, error)
	OrderCount(ctx context.Context, userID uuid.UUID) (int64, error)
	AverageUnitPrice(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error)
	TopSupplier(ctx context.Context, userID uuid.UUID) (*repository.SupplierSpend, error)
	SpendByCategory(ctx context.Context, userID uuid.UUID) ([]repository.CategorySpend, error)
	FarmerOrderCountSince(ctx context.Context, farmerID uuid.UUID, since time.Time) (int64, error)
	FarmerPendingOrderCount(ctx context.Context, farmerID uuid.UUID) (int64, error)
	FarmerRevenueSince(ctx context.Context, farmerID uuid.UUID, since time.Time) (float64, error)
	FarmerAvailableStock(ctx context.Context, farmerID uuid.UUID) (float64, error)
	FarmerPaymentIssueCount(ctx context.Context, farmerID uuid.UUID) (int64, error)
	FarmerLowStockProducts(ctx context.Context, farmerID uuid.UUID, threshold float64) ([]model.Product, error)
}

type SpendReportGenerator interface {
	GenerateSpendReport(report *SpendReport) ([]byte, error)
}

type AnalyticsService struct {
	analytics AnalyticsStore
	products  ProductStore
	messages  MessageStore
	excel     SpendReportGenerator
	now       func() time.Time
}

func NewAnalyticsService(analytics AnalyticsStore, products ProductStore, messages MessageStore, excel SpendReportGenerator) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		products:  products,
		messages:  messages,
		excel:     excel,
		now:       time.Now,
	}
}

type PriceTrend struct {
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction"`
}

type BusinessMetrics struct {
	TotalSpend  float64                   `json:"totalSpend"`
	OrderVolume int64                     `json:"orderVolume"`
	PriceTrend  PriceTrend                `json:"priceTrend"`
	TopSupplier *repository.SupplierSpend `json:"topSupplier"`
}

// Metrics summarizes the caller's purchasing activity. The price trend
// compares the average unit price of the last thirty days against the
// thirty days before that.
func (s *AnalyticsService) Metrics(ctx context.Context, principal model.Principal) (*BusinessMetrics, error) {
	spend, err := s.analytics.TotalSpend(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	volume, err := s.analytics.OrderCount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current, err := s.analytics.AverageUnitPrice(ctx, principal.ID, now.Add(-priceTrendWindow), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.analytics.AverageUnitPrice(ctx, principal.ID, now.Add(-2*priceTrendWindow), now.Add(-priceTrendWindow))
	if err != nil {
		return nil, err
	}

	top, err := s.analytics.TopSupplier(ctx, principal.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &BusinessMetrics{
		TotalSpend:  spend,
		OrderVolume: volume,
		PriceTrend:  priceTrend(current, previous),
		TopSupplier: top,
	}, nil
}

func priceTrend(current, previous float64) PriceTrend {
	if previous == 0 {
		return PriceTrend{Direction: "flat"}
	}
	change := (current - previous) / previous * 100
	direction := "flat"
	switch {
	case change > 0:
		direction = "up"
	case change < 0:
		direction = "down"
	}
	return PriceTrend{Percentage: change, Direction: direction}
}

type SpendReport struct {
	GeneratedAt time.Time
	BuyerName   string
	TotalSpend  float64
	OrderVolume int64
	Categories  []repository.CategorySpend
}

type SpendReportResult struct {
	FileName string
	Content  []byte
}

// ExportSpendReport builds the spend-analysis workbook for download.
func (s *AnalyticsService) ExportSpendReport(ctx context.Context, principal model.Principal) (*SpendReportResult, error) {
	spend, err := s.analytics.TotalSpend(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	volume, err := s.analytics.OrderCount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	categories, err := s.analytics.SpendByCategory(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	report := &SpendReport{
		GeneratedAt: s.now(),
		BuyerName:   principal.FullName,
		TotalSpend:  spend,
		OrderVolume: volume,
		Categories:  categories,
	}
	content, err := s.excel.GenerateSpendReport(report)
	if err != nil {
		return nil, fmt.Errorf("generate spend report: %w", err)
	}
	return &SpendReportResult{
		FileName: fmt.Sprintf("spend-analysis-%s.xlsx", report.GeneratedAt.Format("2006-01-02")),
		Content:  content,
	}, nil
}

type FarmerDashboard struct {
	OrdersToday     int64                `json:"ordersToday"`
	PendingOrders   int64                `json:"pendingOrders"`
	RevenueThisWeek float64              `json:"revenueThisWeek"`
	RevenueTotal    float64              `json:"revenueTotal"`
	AvailableStock  float64              `json:"availableStock"`
	PaymentIssues   int64                `json:"paymentIssues"`
	LowStock        []model.Product      `json:"lowStock"`
	RecentProducts  []model.Product      `json:"recentProducts"`
	RecentMessages  []model.Conversation `json:"recentMessages"`
}

func (s *AnalyticsService) Dashboard(ctx context.Context, principal model.Principal) (*FarmerDashboard, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	dashboard := &FarmerDashboard{}
	var err error

	if dashboard.OrdersToday, err = s.analytics.FarmerOrderCountSince(ctx, principal.ID, startOfDay); err != nil {
		return nil, err
	}
	if dashboard.PendingOrders, err = s.analytics.FarmerPendingOrderCount(ctx, principal.ID); err != nil {
		return nil, err
	}
	if dashboard.RevenueThisWeek, err = s.analytics.FarmerRevenueSince(ctx, principal.ID, startOfWeek); err != nil {
		return nil, err
	}
	if dashboard.RevenueTotal, err = s.analytics.FarmerRevenueSince(ctx, principal.ID, time.Time{}); err != nil {
		return nil, err
	}
	if dashboard.AvailableStock, err = s.analytics.FarmerAvailableStock(ctx, principal.ID); err != nil {
		return nil, err
	}
	if dashboard.PaymentIssues, err = s.analytics.FarmerPaymentIssueCount(ctx, principal.ID); err != nil {
		return nil, err
	}
	if dashboard.LowStock, err = s.analytics.FarmerLowStockProducts(ctx, principal.ID, lowStockThreshold); err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, repository.ProductFilter{FarmerID: principal.ID})
	if err != nil {
		return nil, err
	}
	if len(products) > dashboardRecent {
		products = products[:dashboardRecent]
	}
	dashboard.RecentProducts = products

	conversations, err := s.messages.ListConversations(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if len(conversations) > dashboardRecent {
		conversations = conversations[:dashboardRecent]
	}
	dashboard.RecentMessages = conversations

	return dashboard, nil
}
