package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImportRecord representa la adquisición de unidades de un producto por un
// usuario. Borrar un registro nunca devuelve stock al producto.
type ImportRecord struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserUID   string             `json:"userUid" bson:"userUid"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ImportWithProduct es un registro de importación junto con el estado
// actual de su producto.
type ImportWithProduct struct {
	ImportRecord `bson:",inline"`
	Product      Product `json:"product" bson:"product"`
}

// CreateImportRequest es el body de POST /imports.
type CreateImportRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}
