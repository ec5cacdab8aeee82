package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un listado comerciable del catálogo. Solo el dueño
// puede mutarlo; AvailableQty nunca baja de cero.
type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	ImageURL      string             `json:"imageUrl" bson:"imageUrl"`
	OriginCountry string             `json:"originCountry" bson:"originCountry"`
	Rating        float64            `json:"rating" bson:"rating"`
	Price         float64            `json:"price" bson:"price"`
	AvailableQty  int64              `json:"availableQty" bson:"availableQty"`
	OwnerUID      string             `json:"ownerUid" bson:"ownerUid"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateProductRequest es el body de POST /products.
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	AvailableQty  *int64   `json:"availableQty" binding:"required,gte=0"`
	ImageURL      string   `json:"imageUrl"`
	OriginCountry string   `json:"originCountry"`
	Rating        float64  `json:"rating"`
}

// ProductUpdate representa los campos actualizables de un producto. Un campo
// nil no se toca; un campo presente pero inválido rechaza todo el request.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	ImageURL      *string  `json:"imageUrl"`
	OriginCountry *string  `json:"originCountry"`
	Rating        *float64 `json:"rating"`
	Price         *float64 `json:"price"`
	AvailableQty  *int64   `json:"availableQty"`
}
