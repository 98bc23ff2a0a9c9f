package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tabledash/tabledash/internal/domain/model"
	"github.com/tabledash/tabledash/internal/server/http/handlers"
	"github.com/tabledash/tabledash/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.TabledashFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	kitchenHandler := handlers.NewKitchenHandler(facade)
	deliveryHandler := handlers.NewDeliveryHandler(facade)
	managerHandler := handlers.NewManagerHandler(facade)
	ratingHandler := handlers.NewRatingHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	customer := user.Group("")
	customer.Use(middleware.AuthRequired(facade), middleware.RoleRequired(model.RoleCustomer))
	customer.GET("/balance", walletHandler.Summary)
	customer.POST("/balance/topup", walletHandler.TopUp)
	customer.POST("/orders", orderHandler.Place)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:id", orderHandler.Get)

	kitchen := api.Group("/kitchen")
	kitchen.Use(middleware.AuthRequired(facade), middleware.RoleRequired(model.RoleChef))
	kitchen.GET("/orders", kitchenHandler.Queue)
	kitchen.POST("/orders/:id/claim", kitchenHandler.Claim)
	kitchen.POST("/orders/:id/ready", kitchenHandler.Ready)

	delivery := api.Group("/delivery")
	delivery.Use(middleware.AuthRequired(facade), middleware.RoleRequired(model.RoleDriver))
	delivery.GET("/requests", deliveryHandler.OpenRequests)
	delivery.POST("/requests/:id/bids", deliveryHandler.Bid)
	delivery.POST("/orders/:id/status", deliveryHandler.Advance)

	manager := api.Group("/manager")
	manager.Use(middleware.AuthRequired(facade), middleware.RoleRequired(model.RoleManager))
	manager.GET("/requests/:id/bids", managerHandler.Bids)
	manager.POST("/requests/:id/approve", managerHandler.Approve)
	manager.POST("/bids/:id/reject", managerHandler.Reject)
	manager.POST("/customers/:id/vip", managerHandler.SetVIP)
	manager.POST("/customers/:id/promo", managerHandler.GrantPromo)
	manager.POST("/ratings/:id/resolve", managerHandler.ResolveDispute)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/ratings", ratingHandler.Submit)
	authed.POST("/ratings/:id/dispute", ratingHandler.Dispute)
	authed.GET("/users/:id/performance", ratingHandler.Performance)

	return engine
}
