package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"import-export-hub/internal/auth"
	"import-export-hub/internal/cache"
	"import-export-hub/internal/models"
	"import-export-hub/internal/repository"
)

type ProductHandler struct {
	repo  repository.ProductRepository
	cache *cache.Cache
}

func NewProductHandler(repo repository.ProductRepository, c *cache.Cache) *ProductHandler {
	return &ProductHandler{repo: repo, cache: c}
}

// ListProducts lista el catálogo público, con filtro por nombre y tope de
// resultados (con caché).
func (h *ProductHandler) ListProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	limit := parseLimit(c.Query("limit"))

	cacheKey := fmt.Sprintf("products:list:q:%s_l:%d", search, limit)
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	items, err := h.repo.Find(c.Request.Context(), search, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
		return
	}

	h.cache.Set(cacheKey, items, 2*time.Minute)
	c.JSON(http.StatusOK, items)
}

// parseLimit: default 50, valores no parseables caen a 20, acotado a 1..200.
func parseLimit(raw string) int64 {
	if raw == "" {
		return 50
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		n = 20
	}
	if n < 1 {
		n = 1
	}
	if n > 200 {
		n = 200
	}

	return int64(n)
}

// GetProductByID obtiene un producto por ID (público, con caché).
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID := c.Param("id")

	cacheKey := "product:" + productID
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.repo.FindByID(c.Request.Context(), productID)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
	default:
		h.cache.Set(cacheKey, product, 5*time.Minute)
		c.JSON(http.StatusOK, product)
	}
}

// ListMyProducts lista los productos del caller autenticado.
func (h *ProductHandler) ListMyProducts(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	items, err := h.repo.FindByOwner(c.Request.Context(), user.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch your products"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateProduct crea un producto a nombre del caller autenticado.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields: name"})
		return
	}

	product := &models.Product{
		Name:          name,
		ImageURL:      strings.TrimSpace(req.ImageURL),
		OriginCountry: strings.TrimSpace(req.OriginCountry),
		Rating:        req.Rating,
		Price:         *req.Price,
		AvailableQty:  *req.AvailableQty,
		OwnerUID:      user.UID,
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
		return
	}

	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct actualiza parcialmente un producto del caller. Cualquier
// campo presente pero inválido rechaza el request completo.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	productID := c.Param("id")

	// Existencia y dueño antes de mirar el payload: un no-dueño recibe 403
	// aunque el body sea inválido.
	if !h.requireOwnership(c, productID, user.UID) {
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updateMap := bson.M{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid field: name"})
			return
		}
		updateMap["name"] = name
	}
	if update.ImageURL != nil {
		updateMap["imageUrl"] = strings.TrimSpace(*update.ImageURL)
	}
	if update.OriginCountry != nil {
		updateMap["originCountry"] = strings.TrimSpace(*update.OriginCountry)
	}
	if update.Rating != nil {
		updateMap["rating"] = *update.Rating
	}
	if update.Price != nil {
		if *update.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid field: price"})
			return
		}
		updateMap["price"] = *update.Price
	}
	if update.AvailableQty != nil {
		if *update.AvailableQty < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid field: availableQty"})
			return
		}
		updateMap["availableQty"] = *update.AvailableQty
	}

	if len(updateMap) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no valid fields to update"})
		return
	}

	if err := h.repo.Update(c.Request.Context(), productID, updateMap); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
		return
	}

	h.cache.Delete("product:" + productID)
	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

// DeleteProduct elimina de forma permanente un producto del caller.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	productID := c.Param("id")

	if !h.requireOwnership(c, productID, user.UID) {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
		return
	}

	h.cache.Delete("product:" + productID)
	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// requireOwnership verifica existencia y dueño; responde 400/404/403/500 y
// retorna false si el caller no puede mutar el producto.
func (h *ProductHandler) requireOwnership(c *gin.Context, productID, callerUID string) bool {
	existing, err := h.repo.FindByID(c.Request.Context(), productID)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return false
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return false
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
		return false
	}

	if existing.OwnerUID != callerUID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return false
	}

	return true
}
