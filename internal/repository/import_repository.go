package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"import-export-hub/internal/models"
)

type ImportRepository interface {
	Create(ctx context.Context, record *models.ImportRecord) error
	FindByUser(ctx context.Context, userUID string) ([]models.ImportWithProduct, error)
	FindByID(ctx context.Context, id string) (*models.ImportRecord, error)
	Delete(ctx context.Context, id string) error
}

type mongoImportRepository struct {
	collection *mongo.Collection
}

func NewImportRepository(collection *mongo.Collection) ImportRepository {
	return &mongoImportRepository{collection: collection}
}

// Create inserta un registro de importación asignando id y timestamp.
func (r *mongoImportRepository) Create(ctx context.Context, record *models.ImportRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByUser lista las importaciones de un usuario unidas con su producto.
// El $unwind descarta registros cuyo producto ya no existe (inner join).
func (r *mongoImportRepository) FindByUser(ctx context.Context, userUID string) ([]models.ImportWithProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"userUid": userUID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "productId",
			"foreignField": "_id",
			"as":           "product",
		}},
		{"$unwind": "$product"},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []models.ImportWithProduct{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// FindByID obtiene un registro de importación por ID.
func (r *mongoImportRepository) FindByID(ctx context.Context, id string) (*models.ImportRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var record models.ImportRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &record, nil
}

// Delete elimina un registro de importación. No toca el producto.
func (r *mongoImportRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
