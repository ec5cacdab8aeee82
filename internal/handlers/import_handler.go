package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"import-export-hub/internal/auth"
	"import-export-hub/internal/cache"
	"import-export-hub/internal/models"
	"import-export-hub/internal/repository"
)

type ImportHandler struct {
	imports  repository.ImportRepository
	products repository.ProductRepository
	cache    *cache.Cache
}

func NewImportHandler(imports repository.ImportRepository, products repository.ProductRepository, c *cache.Cache) *ImportHandler {
	return &ImportHandler{imports: imports, products: products, cache: c}
}

// CreateImport registra una importación. Primero el decremento condicional
// de stock (una sola operación atómica del store), después el insert del
// registro. Un crash entre ambos pasos deja stock descontado sin registro;
// la reconciliación es externa.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	err = h.products.DecrementStock(c.Request.Context(), req.ProductID, req.Quantity)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	case errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough quantity available"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to import"})
		return
	}

	record := &models.ImportRecord{
		UserUID:   user.UID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}

	if err := h.imports.Create(c.Request.Context(), record); err != nil {
		// El stock ya quedó descontado: ventana de inconsistencia conocida.
		log.Printf("import insert failed after stock decrement: product=%s user=%s qty=%d err=%v",
			req.ProductID, user.UID, req.Quantity, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to import"})
		return
	}

	h.cache.Delete("product:" + req.ProductID)
	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusCreated, record)
}

// ListMyImports lista las importaciones del caller unidas con su producto.
func (h *ImportHandler) ListMyImports(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	rows, err := h.imports.FindByUser(c.Request.Context(), user.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch your imports"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DeleteImport elimina un registro del caller. Nunca devuelve stock al
// producto: política explícita, no un olvido.
func (h *ImportHandler) DeleteImport(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	importID := c.Param("id")

	existing, err := h.imports.FindByID(c.Request.Context(), importID)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid import id"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Import not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete import"})
		return
	}

	if existing.UserUID != user.UID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	if err := h.imports.Delete(c.Request.Context(), importID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Import not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete import"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "import deleted"})
}
