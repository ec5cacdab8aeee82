package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"import-export-hub/internal/auth"
	"import-export-hub/internal/cache"
	"import-export-hub/internal/models"
	"import-export-hub/internal/repository"
	"import-export-hub/internal/repository/mocks"
)

func withUser(user *auth.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextUserKey, user)
	}
}

func newProductRouter(repo repository.ProductRepository, user *auth.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewProductHandler(repo, cache.New(time.Minute))

	authed := func(handlerFunc gin.HandlerFunc) []gin.HandlerFunc {
		if user == nil {
			return []gin.HandlerFunc{handlerFunc}
		}
		return []gin.HandlerFunc{withUser(user), handlerFunc}
	}

	router.GET("/products", h.ListProducts)
	router.GET("/products/my", authed(h.ListMyProducts)...)
	router.GET("/products/:id", h.GetProductByID)
	router.POST("/products", authed(h.CreateProduct)...)
	router.PUT("/products/:id", authed(h.UpdateProduct)...)
	router.DELETE("/products/:id", authed(h.DeleteProduct)...)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	router := newProductRouter(mockRepo, nil)

	tea := models.Product{ID: primitive.NewObjectID(), Name: "Green Tea", AvailableQty: 5}
	mockRepo.On("Find", mock.Anything, "tea", int64(1)).Return([]models.Product{tea}, nil).Once()

	w := doJSON(t, router, http.MethodGet, "/products?search=tea&limit=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Green Tea", items[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestListProducts_DefaultLimit(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	router := newProductRouter(mockRepo, nil)

	mockRepo.On("Find", mock.Anything, "", int64(50)).Return([]models.Product{}, nil).Once()

	w := doJSON(t, router, http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	mockRepo.AssertExpectations(t)
}

func TestListProducts_CachedSecondCall(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	router := newProductRouter(mockRepo, nil)

	// El repo debe ser consultado una sola vez; la segunda sale del caché.
	mockRepo.On("Find", mock.Anything, "", int64(50)).Return([]models.Product{}, nil).Once()

	first := doJSON(t, router, http.MethodGet, "/products", nil)
	second := doJSON(t, router, http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	mockRepo.AssertExpectations(t)
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"", 50},
		{"abc", 20},
		{"0", 20},
		{"-5", 1},
		{"500", 200},
		{"7", 7},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLimit(tc.raw), "limit=%q", tc.raw)
	}
}

func TestGetProductByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, nil)
		mockRepo.On("FindByID", mock.Anything, "nope").Return(nil, repository.ErrInvalidID).Once()

		w := doJSON(t, router, http.MethodGet, "/products/nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, nil)
		id := primitive.NewObjectID().Hex()
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		w := doJSON(t, router, http.MethodGet, "/products/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, nil)
		product := &models.Product{ID: primitive.NewObjectID(), Name: "Cacao", OwnerUID: "user-a"}
		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()

		w := doJSON(t, router, http.MethodGet, "/products/"+product.ID.Hex(), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var got models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Cacao", got.Name)
		assert.Equal(t, product.ID, got.ID)
	})
}

func TestListMyProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})

	mine := []models.Product{{ID: primitive.NewObjectID(), Name: "Coffee", OwnerUID: "user-a"}}
	mockRepo.On("FindByOwner", mock.Anything, "user-a").Return(mine, nil).Once()

	w := doJSON(t, router, http.MethodGet, "/products/my", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "user-a", items[0].OwnerUID)
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct(t *testing.T) {
	price := 10.0
	qty := int64(5)

	t.Run("success round trip", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Tea" && p.Price == 10.0 && p.AvailableQty == 5 && p.OwnerUID == "user-a"
		})).Return(nil).Once()

		w := doJSON(t, router, http.MethodPost, "/products", models.CreateProductRequest{
			Name: "  Tea  ", Price: &price, AvailableQty: &qty,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var got models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Tea", got.Name)
		assert.Equal(t, "user-a", got.OwnerUID)
		assert.False(t, got.ID.IsZero())
		assert.False(t, got.CreatedAt.IsZero())
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing price", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})

		w := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": "Tea", "availableQty": 5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})

		w := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": "   ", "price": 10, "availableQty": 5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative price", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})

		w := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": "Tea", "price": -1, "availableQty": 5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, nil)

		w := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": "Tea", "price": 10, "availableQty": 5})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	owned := func() *models.Product {
		return &models.Product{ID: primitive.NewObjectID(), Name: "Tea", OwnerUID: "user-a"}
	}

	t.Run("owner updates supplied fields", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		product := owned()

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()
		mockRepo.On("Update", mock.Anything, product.ID.Hex(), bson.M{"price": 12.5}).Return(nil).Once()

		w := doJSON(t, router, http.MethodPut, "/products/"+product.ID.Hex(), gin.H{"price": 12.5})

		assert.Equal(t, http.StatusOK, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner gets 403 regardless of payload", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-b"})
		product := owned()

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Twice()

		valid := doJSON(t, router, http.MethodPut, "/products/"+product.ID.Hex(), gin.H{"price": 12.5})
		invalid := doJSON(t, router, http.MethodPut, "/products/"+product.ID.Hex(), gin.H{"price": -3})

		assert.Equal(t, http.StatusForbidden, valid.Code)
		assert.Equal(t, http.StatusForbidden, invalid.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		id := primitive.NewObjectID().Hex()

		mockRepo.On("FindByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		w := doJSON(t, router, http.MethodPut, "/products/"+id, gin.H{"price": 12.5})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid supplied field rejects whole request", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		product := owned()

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()

		w := doJSON(t, router, http.MethodPut, "/products/"+product.ID.Hex(), gin.H{"name": "Fine", "price": -3})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty payload", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		product := owned()

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()

		w := doJSON(t, router, http.MethodPut, "/products/"+product.ID.Hex(), gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		product := &models.Product{ID: primitive.NewObjectID(), OwnerUID: "user-a"}

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()
		mockRepo.On("Delete", mock.Anything, product.ID.Hex()).Return(nil).Once()

		w := doJSON(t, router, http.MethodDelete, "/products/"+product.ID.Hex(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner gets 403", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-b"})
		product := &models.Product{ID: primitive.NewObjectID(), OwnerUID: "user-a"}

		mockRepo.On("FindByID", mock.Anything, product.ID.Hex()).Return(product, nil).Once()

		w := doJSON(t, router, http.MethodDelete, "/products/"+product.ID.Hex(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		router := newProductRouter(mockRepo, &auth.User{UID: "user-a"})
		id := primitive.NewObjectID().Hex()

		mockRepo.On("FindByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

		w := doJSON(t, router, http.MethodDelete, "/products/"+id, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
