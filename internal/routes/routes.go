package routes

import (
	"net/http"
	"os"

	"github.com/amirasyraf/sellhub-golang/internal/handlers"
	"github.com/amirasyraf/sellhub-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the frontend origin to call us with the headers our
// API actually uses (notably Authorization for JWT tokens).
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)
		v1.POST("/auth/forgot-password", h.ForgotPassword)
		v1.POST("/auth/reset-password", h.ResetPassword)

		// --- World Routes (Public) ---
		v1.GET("/world/countries", h.GetCountries)
		v1.GET("/world/states", h.GetStates)
		v1.GET("/world/cities", h.GetCities)

		// --- Membership Plans (Public) ---
		v1.GET("/membership-plans", h.GetMembershipPlans)

		// --- Home Routes (Public Storefront) ---
		v1.GET("/home/products", h.HomeProducts)
		v1.GET("/home/categories", h.HomeCategories)
		v1.GET("/home/sub-categories/:categorySlug", h.HomeSubCategories)
		v1.POST("/home/products/filter", h.FilterProducts)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB))
		{
			auth.POST("/auth/logout", h.Logout)

			// --- Profile Routes ---
			auth.GET("/profile", h.GetProfile)
			auth.POST("/profile/update", h.UpdateProfile)
			auth.POST("/profile/change-password", h.ChangePassword)

			// --- Shipping Address Routes ---
			auth.GET("/shipping-addresses", h.GetShippingAddresses)
			auth.POST("/shipping-addresses", h.StoreShippingAddress)
			auth.POST("/shipping-addresses/show", h.ShowShippingAddress)
			auth.POST("/shipping-addresses/delete", h.DeleteShippingAddress)

			// --- Shop Routes ---
			auth.GET("/shop", h.GetShop)
			auth.POST("/shop", h.StoreShop)

			// --- Category Routes (reads for any logged-in user) ---
			auth.GET("/product-categories", h.GetProductCategories)
			auth.POST("/product-categories/show", h.ShowProductCategory)
			auth.GET("/product-sub-categories", h.GetProductSubCategories)
			auth.POST("/product-sub-categories/show", h.ShowProductSubCategory)

			// --- Product Routes (verified shop required, checked in handlers) ---
			auth.POST("/product/get", h.GetProducts)
			auth.POST("/product/show", h.ShowProduct)
			auth.POST("/product/store", h.StoreProduct)
			auth.POST("/product/destroy", h.DeleteProduct)

			// --- Product Image Routes ---
			auth.POST("/product-image/get", h.GetProductImages)
			auth.POST("/product-image/store", h.StoreProductImage)

			// --- Product Attribute Routes ---
			auth.POST("/product-attribute/get", h.GetProductAttributes)
			auth.POST("/product-attribute/show", h.ShowProductAttribute)
			auth.POST("/product-attribute/store", h.StoreProductAttribute)
			auth.POST("/product-attribute/destroy", h.DestroyProductAttribute)

			// --- Product Attribute Value Routes ---
			auth.POST("/product-attribute-value/get", h.GetProductAttributeValues)
			auth.POST("/product-attribute-value/show", h.ShowProductAttributeValue)
			auth.POST("/product-attribute-value/store", h.StoreProductAttributeValue)
			auth.POST("/product-attribute-value/destroy", h.DestroyProductAttributeValue)

			// --- Product Attribute Set Routes ---
			auth.POST("/product-attribute-set/get", h.GetProductAttributeSets)
			auth.POST("/product-attribute-set/store", h.StoreProductAttributeSet)
			auth.POST("/product-attribute-set/destroy", h.DestroyProductAttributeSet)

			// --- Product Variant Routes ---
			auth.POST("/product-variant/get", h.GetProductVariants)
			auth.POST("/product-variant/store", h.StoreProductVariant)
			auth.POST("/product-variant/update", h.UpdateProductVariant)
			auth.POST("/product-variant/destroy", h.DestroyProductVariant)

			// --- Wishlist Routes ---
			auth.GET("/wishlist", h.GetWishlist)
			auth.POST("/wishlist/add", h.AddWishlistItem)
			auth.POST("/wishlist/remove", h.RemoveWishlistItem)

			// --- Admin Routes ---
			admin := auth.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.PATCH("/shops/:id/verify", h.VerifyShop)

				admin.POST("/product-categories", h.StoreProductCategory)
				admin.POST("/product-categories/delete", h.DeleteProductCategory)
				admin.POST("/product-sub-categories", h.StoreProductSubCategory)
				admin.POST("/product-sub-categories/delete", h.DeleteProductSubCategory)
			}
		}
	}

	return router
}
