package router

import (
	"time"

	"gogett/config"
	"gogett/internal/handler"
	"gogett/internal/middleware"
	"gogett/internal/repository"
	"gogett/internal/service"
	"gogett/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, hub *ws.LocationHub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	courierRepo := repository.NewCourierRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, courierRepo, blacklistRepo)
	deliverySvc := service.NewDeliveryService(db)
	financeSvc := service.NewFinanceService(db, &cfg.Finance)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, courierRepo)
	meHandler := handler.NewMeHandler(courierRepo)
	orderHandler := handler.NewOrderHandler(deliverySvc, orderRepo, hub)
	returnHandler := handler.NewReturnHandler(deliverySvc, orderRepo)
	financeHandler := handler.NewFinanceHandler(financeSvc)
	performanceHandler := handler.NewPerformanceHandler(orderRepo, reviewRepo)
	ticketHandler := handler.NewTicketHandler(ticketRepo)

	authMw := middleware.AuthRequired(&cfg.JWT, blacklistRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PUT("/profile", meHandler.SaveProfile)
			me.GET("/vehicle", meHandler.GetVehicle)
			me.PUT("/vehicle", meHandler.SaveVehicle)
			me.GET("/bank", meHandler.GetBank)
			me.POST("/bank", meHandler.CreateBank)
			me.PUT("/bank", meHandler.UpdateBank)
			me.DELETE("/bank", meHandler.DeleteBank)
		}

		orders := api.Group("/orders")
		orders.Use(authMw)
		{
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Detail)
			orders.POST("/accept", orderHandler.Accept)
			orders.POST("/pick", orderHandler.Pick)
			orders.POST("/deliver", orderHandler.Deliver)
		}

		returns := api.Group("/returns")
		returns.Use(authMw)
		{
			returns.GET("", returnHandler.List)
			returns.GET("/:id", returnHandler.Detail)
			returns.POST("/pick", returnHandler.Pick)
			returns.POST("/deliver", returnHandler.Deliver)
		}

		finance := api.Group("/finance")
		finance.Use(authMw)
		{
			finance.GET("/cash", financeHandler.CashInHand)
			finance.POST("/deposit", financeHandler.Deposit)
			finance.GET("/deposits", financeHandler.Deposits)
			finance.GET("/arrears", financeHandler.Arrears)
			finance.POST("/withdraw", financeHandler.Withdraw)
			finance.GET("/withdrawals", financeHandler.Withdrawals)
			finance.POST("/withdraw/receive", financeHandler.Receive)
		}

		performance := api.Group("/performance")
		performance.Use(authMw)
		{
			performance.GET("/completed", performanceHandler.Completed)
			performance.GET("/failed", performanceHandler.Failed)
			performance.POST("/reviews/customer", performanceHandler.ReviewCustomer)
			performance.GET("/reviews/customer", performanceHandler.CustomerReviews)
			performance.POST("/reviews/seller", performanceHandler.ReviewSeller)
			performance.GET("/reviews/seller", performanceHandler.SellerReviews)
		}

		tickets := api.Group("/tickets")
		tickets.Use(authMw)
		{
			tickets.POST("", ticketHandler.Create)
			tickets.GET("", ticketHandler.List)
			tickets.GET("/:id", ticketHandler.Detail)
			tickets.POST("/:id/messages", ticketHandler.AddMessage)
		}
	}

	r.GET("/ws/location", ws.UpgradeLocationWS(&cfg.JWT, hub))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
