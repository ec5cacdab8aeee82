package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"import-export-hub/internal/auth"
	"import-export-hub/internal/cache"
	"import-export-hub/internal/handlers"
	"import-export-hub/internal/repository"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, verifier auth.Verifier, c *cache.Cache) {
	products := repository.NewProductRepository(db.Collection("products"))
	imports := repository.NewImportRepository(db.Collection("imports"))

	ph := handlers.NewProductHandler(products, c)
	ih := handlers.NewImportHandler(imports, products, c)

	requireAuth := auth.RequireAuth(verifier)

	router.GET("/", handlers.Health)

	p := router.Group("/products")
	{
		p.GET("", ph.ListProducts)
		p.GET("/my", requireAuth, ph.ListMyProducts) // antes de "/:id"
		p.GET("/:id", ph.GetProductByID)
		p.POST("", requireAuth, ph.CreateProduct)
		p.PUT("/:id", requireAuth, ph.UpdateProduct)
		p.DELETE("/:id", requireAuth, ph.DeleteProduct)
	}

	i := router.Group("/imports")
	{
		i.POST("", requireAuth, ih.CreateImport)
		i.GET("/my", requireAuth, ih.ListMyImports)
		i.DELETE("/:id", requireAuth, ih.DeleteImport)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
