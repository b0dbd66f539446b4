package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/model"
)

func NewRouter(h *Handler, authMiddleware gin.HandlerFunc, environment string) *gin.Engine {
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)
	authGroup.GET("/me", authMiddleware, h.me)

	protected := api.Group("/")
	protected.Use(authMiddleware)

	business := middleware.RequireRoles(model.RoleBusiness)
	farmer := middleware.RequireRoles(model.RoleFarmer)
	buyer := middleware.RequireRoles(model.RoleBusiness, model.RoleCustomer)
	admin := middleware.RequireRoles(model.RoleAdmin)

	profile := protected.Group("/profile")
	profile.GET("", h.getProfile)
	profile.PUT("", h.updateProfile)
	profile.PUT("/password", h.changePassword)
	protected.GET("/buyers", h.listBuyers)

	rfqs := protected.Group("/rfqs")
	rfqs.POST("", business, h.createRFQ)
	rfqs.GET("", h.listRFQs)
	rfqs.GET("/regions", h.listRegions)
	rfqs.GET("/transport-methods", h.listTransportMethods)
	rfqs.GET("/:id", h.getRFQ)
	rfqs.POST("/:id/bids", farmer, h.submitBid)
	rfqs.GET("/:id/bids", business, h.listBids)
	rfqs.POST("/:id/bids/:bidId/accept", business, h.acceptBid)
	protected.GET("/bids/my", farmer, h.listMyBids)

	products := protected.Group("/products")
	products.POST("", farmer, h.createProduct)
	products.GET("", h.listProducts)
	products.GET("/mine", farmer, h.listMyProducts)
	products.GET("/titles", h.listProductTitles)
	products.GET("/:id", h.getProduct)
	products.PUT("/:id", farmer, h.updateProduct)
	products.PATCH("/:id/status", farmer, h.updateProductStatus)
	products.PATCH("/:id/publish", farmer, h.toggleProductPublish)
	products.DELETE("/:id", farmer, h.deleteProduct)

	cart := protected.Group("/cart")
	cart.Use(buyer)
	cart.GET("", h.getCart)
	cart.POST("/items", h.setCartItem)
	cart.DELETE("/items/:productId", h.removeCartItem)

	orders := protected.Group("/orders")
	orders.POST("/checkout", buyer, h.checkout)
	orders.GET("", h.listOrders)
	orders.GET("/:id", h.getOrder)
	orders.PATCH("/:id/status", h.updateOrderStatus)

	invoices := protected.Group("/invoices")
	invoices.GET("", h.listInvoices)
	invoices.GET("/:id", h.getInvoice)
	invoices.GET("/:id/pdf", h.downloadInvoicePDF)

	messages := protected.Group("/messages")
	messages.POST("", h.sendMessage)
	messages.GET("/conversations", h.listConversations)
	messages.GET("/conversations/:id/messages", h.listMessages)

	analytics := protected.Group("/analytics")
	analytics.GET("/metrics", business, h.businessMetrics)
	analytics.GET("/spend-report", business, h.exportSpendReport)
	analytics.GET("/dashboard", farmer, h.farmerDashboard)

	adminGroup := protected.Group("/admin")
	adminGroup.Use(admin)
	adminGroup.GET("/users", h.adminListUsers)
	adminGroup.PATCH("/users/:id/verify", h.adminVerifyUser)
	adminGroup.PUT("/users/:id", h.adminUpdateUser)
	adminGroup.DELETE("/users/:id", h.adminDeleteUser)
	adminGroup.GET("/audit", h.adminListAudit)

	router.GET("/ws", authMiddleware, h.serveWS)

	return router
}
