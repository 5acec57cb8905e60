package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/hsddev/cake-store/controllers/catalog"
	productControllers "github.com/hsddev/cake-store/controllers/product"
	reviewControllers "github.com/hsddev/cake-store/controllers/review"
)

// SetupCatalogRoutes registers categories, subcategories, brands,
// products and reviews. Reads are public; writes require a staff role.
func SetupCatalogRoutes(v1 *gin.RouterGroup, d Deps, protect, staffOnly gin.HandlerFunc) {
	categories := catalogControllers.NewCategories(d.Cfg, d.Store.Categories)
	subCategories := catalogControllers.NewSubCategories(d.Store.SubCategories)
	brands := catalogControllers.NewBrands(d.Cfg, d.Store.Brands)
	products := productControllers.NewProducts(d.Cfg, d.Store.Products)
	reviews := reviewControllers.NewReviews(d.Store.Reviews)

	categoryGroup := v1.Group("/categories")
	{
		categoryGroup.GET("/", categories.GetAll)
		categoryGroup.GET("/:id", categories.GetOne)
		categoryGroup.POST("/", protect, staffOnly, categories.Create)
		categoryGroup.PUT("/:id", protect, staffOnly, categories.Update)
		categoryGroup.PUT("/:id/image", protect, staffOnly, categories.UploadImage)
		categoryGroup.DELETE("/:id", protect, staffOnly, categories.Delete)

		// Subcategories nested under their parent category.
		categoryGroup.GET("/:id/subcategories", subCategories.GetAll)
		categoryGroup.POST("/:id/subcategories", protect, staffOnly, subCategories.Create)
	}

	subCategoryGroup := v1.Group("/subcategories")
	{
		subCategoryGroup.GET("/", subCategories.GetAll)
		subCategoryGroup.GET("/:id", subCategories.GetOne)
		subCategoryGroup.POST("/", protect, staffOnly, subCategories.Create)
		subCategoryGroup.PUT("/:id", protect, staffOnly, subCategories.Update)
		subCategoryGroup.DELETE("/:id", protect, staffOnly, subCategories.Delete)
	}

	brandGroup := v1.Group("/brands")
	{
		brandGroup.GET("/", brands.GetAll)
		brandGroup.GET("/:id", brands.GetOne)
		brandGroup.POST("/", protect, staffOnly, brands.Create)
		brandGroup.PUT("/:id", protect, staffOnly, brands.Update)
		brandGroup.PUT("/:id/image", protect, staffOnly, brands.UploadImage)
		brandGroup.DELETE("/:id", protect, staffOnly, brands.Delete)
	}

	productGroup := v1.Group("/products")
	{
		productGroup.GET("/", products.GetAll)
		productGroup.GET("/export-excel", protect, staffOnly, products.ExportExcel)
		productGroup.GET("/:id", products.GetOne)
		productGroup.POST("/", protect, staffOnly, products.Create)
		productGroup.PUT("/:id", protect, staffOnly, products.Update)
		productGroup.PUT("/:id/images", protect, staffOnly, products.UploadImages)
		productGroup.DELETE("/:id", protect, staffOnly, products.Delete)

		// Reviews nested under their product.
		productGroup.GET("/:id/reviews", reviews.GetAll)
		productGroup.POST("/:id/reviews", protect, reviews.Create)
	}

	reviewGroup := v1.Group("/reviews")
	{
		reviewGroup.GET("/", reviews.GetAll)
		reviewGroup.GET("/:id", reviews.GetOne)
		reviewGroup.PUT("/:id", protect, reviews.Update)
		reviewGroup.DELETE("/:id", protect, reviews.Delete)
	}
}
