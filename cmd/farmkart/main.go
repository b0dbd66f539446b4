package main

import (
	"fmt"
	"os"

	"github.com/farmkart/farmkart-api/internal/auth"
	"github.com/farmkart/farmkart-api/internal/config"
	"github.com/farmkart/farmkart-api/internal/db"
	"github.com/farmkart/farmkart-api/internal/excel"
	httphandler "github.com/farmkart/farmkart-api/internal/http"
	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/logger"
	"github.com/farmkart/farmkart-api/internal/notify"
	"github.com/farmkart/farmkart-api/internal/pdf"
	"github.com/farmkart/farmkart-api/internal/repository"
	"github.com/farmkart/farmkart-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	publisher, err := notify.NewPublisher(cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer publisher.Close()

	userRepo := repository.NewUserRepository(database)
	rfqRepo := repository.NewRFQRepository(database)
	bidRepo := repository.NewBidRepository(database)
	productRepo := repository.NewProductRepository(database)
	cartRepo := repository.NewCartRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)
	messageRepo := repository.NewMessageRepository(database)
	auditRepo := repository.NewAuditRepository(database)
	analyticsRepo := repository.NewAnalyticsRepository(database)

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	parser := auth.NewParser(cfg.Auth.AccessSecret)

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	services := httphandler.Services{
		Auth:      service.NewAuthService(userRepo, issuer),
		Profiles:  service.NewProfileService(userRepo),
		RFQs:      service.NewRFQService(rfqRepo, bidRepo, userRepo, auditRepo, publisher, cfg),
		Products:  service.NewProductService(productRepo, userRepo),
		Carts:     service.NewCartService(cartRepo, productRepo),
		Orders:    service.NewOrderService(orderRepo, cartRepo, productRepo, invoiceRepo),
		Invoices:  service.NewInvoiceService(invoiceRepo, orderRepo, userRepo, pdfGenerator),
		Messages:  service.NewMessageService(messageRepo, userRepo),
		Analytics: service.NewAnalyticsService(analyticsRepo, productRepo, messageRepo, excelGenerator),
		Admin:     service.NewAdminService(userRepo, auditRepo),
	}

	hub := notify.NewHub(publisher.Client(), log)
	handler := httphandler.NewHandler(services, hub, log)
	authMiddleware := middleware.Auth(parser, userRepo)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting farmkart api")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
