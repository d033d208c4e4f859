// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/littlethreads/storefront/internal/config"
	"github.com/littlethreads/storefront/internal/handlers"
	"github.com/littlethreads/storefront/internal/middleware"
	"github.com/littlethreads/storefront/internal/services"
	"github.com/littlethreads/storefront/internal/utils"
)

// Setup wires services, handlers and middleware into the full route
// table.
func Setup(db *gorm.DB, storage *services.StorageService, cfg *config.Config) *gin.Engine {
	utils.SetJWTSecret(cfg.Session.Secret)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db, storage)
	orderService := services.NewOrderService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(catalogService, orderService, storage, cfg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))

	if !cfg.Server.RateLimitOff {
		limiter := middleware.NewRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitRPS*2)
		r.Use(limiter.Middleware())
	}

	r.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	if cfg.Storage.Backend == "local" {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Storefront
	store := r.Group("/")
	store.Use(middleware.OptionalAuth())
	{
		store.GET("/", catalogHandler.Home)
		store.GET("/product/:id", catalogHandler.ProductDetail)

		store.GET("/login", authHandler.LoginPage)
		store.POST("/login", authHandler.Login)
		store.GET("/signup", authHandler.SignupPage)
		store.POST("/signup", authHandler.Signup)
		store.POST("/logout", authHandler.Logout)
	}

	buyer := r.Group("/")
	buyer.Use(middleware.AuthRequired())
	{
		buyer.POST("/checkout", orderHandler.Checkout)
		buyer.GET("/account", orderHandler.Account)
	}

	// Seller dashboard
	r.GET("/admin/login", adminHandler.LoginPage)
	r.POST("/admin/login", adminHandler.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Dashboard)
		admin.POST("/logout", adminHandler.Logout)
		admin.GET("/new", adminHandler.NewProductPage)
		admin.POST("/new", adminHandler.CreateProduct)
		admin.POST("/products/:id/delete", adminHandler.DeleteProduct)
		admin.GET("/orders", adminHandler.Orders)
		admin.POST("/orders/:id/mark-paid", adminHandler.MarkPaid)
	}

	return r
}
