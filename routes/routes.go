package routes

import (
	"net/http"
	"time"

	"lumina-store/controllers"
	"lumina-store/middleware"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Dependencies struct {
	Catalog    *services.CatalogService
	Sessions   *services.SessionService
	JWTSecret  string
	SessionTTL time.Duration
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authCtrl := &controllers.AuthController{
		Sessions:   deps.Sessions,
		JWTSecret:  deps.JWTSecret,
		SessionTTL: deps.SessionTTL,
	}
	productCtrl := &controllers.ProductController{Catalog: deps.Catalog}
	productDetailCtrl := &controllers.ProductDetailController{Catalog: deps.Catalog}
	categoryCtrl := &controllers.CategoryController{Catalog: deps.Catalog}
	cartCtrl := &controllers.CartController{Catalog: deps.Catalog}
	checkoutCtrl := &controllers.CheckoutController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/categories", categoryCtrl.GetCategories)
	router.GET("/categories/:id", categoryCtrl.GetCategoryByID)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/featured", productCtrl.GetFeaturedProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/products/:id/detail", productDetailCtrl.GetProductDetail)
	router.POST("/sessions", authCtrl.CreateSession)

	sess := router.Group("/")
	sess.Use(middleware.SessionMiddleware(deps.JWTSecret, deps.Sessions))
	{
		sess.GET("/auth/me", authCtrl.GetProfile)
		sess.POST("/auth/login", authCtrl.Login)
		sess.POST("/auth/signup", authCtrl.Register)
		sess.POST("/auth/logout", authCtrl.Logout)

		sess.GET("/cart", cartCtrl.GetCart)
		sess.DELETE("/cart", cartCtrl.ClearCart)
		sess.POST("/cart/items", cartCtrl.AddItem)
		sess.PATCH("/cart/items/:productId", cartCtrl.UpdateItem)
		sess.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)

		sess.POST("/checkout", checkoutCtrl.BeginCheckout)
		sess.GET("/checkout", checkoutCtrl.GetCheckout)
		sess.DELETE("/checkout", checkoutCtrl.AbandonCheckout)
		sess.POST("/checkout/continue", checkoutCtrl.Continue)
		sess.POST("/checkout/back", checkoutCtrl.Back)
		sess.PUT("/checkout/shipping", checkoutCtrl.SetShipping)
		sess.PUT("/checkout/payment", checkoutCtrl.SetPayment)
		sess.POST("/checkout/place-order", checkoutCtrl.PlaceOrder)
	}
}
