package repository

import (
	"context"
	"fmt"
	"time"

	"shopware-admin-mcp/internal/domain"
	"shopware-admin-mcp/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShopRepository implements ShopRepository using MongoDB
type MongoShopRepository struct {
	collection *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		collection: db.Collection("shops"),
	}
}

// Save creates or updates a shop record
func (r *MongoShopRepository) Save(ctx context.Context, shop *domain.Shop) error {
	shop.UpdatedAt = time.Now()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": shop.ID}
	update := bson.M{"$set": shop}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}

	return nil
}

// GetByID retrieves a shop by its id
func (r *MongoShopRepository) GetByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	var shop domain.Shop
	filter := bson.M{"_id": shopID}

	err := r.collection.FindOne(ctx, filter).Decode(&shop)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return &shop, nil
}

// Delete removes a shop record
func (r *MongoShopRepository) Delete(ctx context.Context, shopID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": shopID})
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}
