package storage

import (
	"context"
	"errors"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	itemsCollection      = "menu_items"
	categoriesCollection = "menu_categories"
)

// MongoRepository keeps the menu catalog in MongoDB. Restaurants and
// tables stay in postgres.
type MongoRepository struct {
	items      *mongo.Collection
	categories *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		items:      db.Collection(itemsCollection),
		categories: db.Collection(categoriesCollection),
	}
}

type itemDocument struct {
	ID           string               `bson:"_id"`
	RestaurantID string               `bson:"restaurantId"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description"`
	Price        primitive.Decimal128 `bson:"price"`
	CategoryID   string               `bson:"categoryId"`
	Tags         []string             `bson:"tags"`
	Available    bool                 `bson:"available"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func toItemDocument(item *domain.MenuItem) (itemDocument, error) {
	price, err := primitive.ParseDecimal128(item.Price.String())
	if err != nil {
		return itemDocument{}, err
	}
	return itemDocument{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        price,
		CategoryID:   item.CategoryID,
		Tags:         item.Tags,
		Available:    item.Available,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}, nil
}

func (d itemDocument) toDomain() (domain.MenuItem, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return domain.MenuItem{}, err
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.MenuItem{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        price,
		CategoryID:   d.CategoryID,
		Tags:         tags,
		Available:    d.Available,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

type categoryDocument struct {
	Key          string    `bson:"_id"`
	ID           string    `bson:"slug"`
	RestaurantID string    `bson:"restaurantId"`
	Name         string    `bson:"name"`
	Description  string    `bson:"description"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// Category slugs are only unique per restaurant, so the document key
// combines both.
func categoryKey(restaurantID, categoryID string) string {
	return restaurantID + "/" + categoryID
}

func (d categoryDocument) toDomain() domain.MenuCategory {
	return domain.MenuCategory{ID: d.ID, RestaurantID: d.RestaurantID, Name: d.Name, Description: d.Description, CreatedAt: d.CreatedAt}
}

func (r *MongoRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc, err := toItemDocument(item)
	if err != nil {
		return err
	}
	_, err = r.items.InsertOne(ctx, doc)
	return err
}

func (r *MongoRepository) ListItems(ctx context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"restaurantId": restaurantID}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *MongoRepository) GetItem(ctx context.Context, restaurantID, itemID string) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc itemDocument
	err := r.items.FindOne(ctx, bson.M{"_id": itemID, "restaurantId": restaurantID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MongoRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	price, err := primitive.ParseDecimal128(item.Price.String())
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       price,
		"categoryId":  item.CategoryID,
		"tags":        item.Tags,
		"available":   item.Available,
		"updatedAt":   item.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc itemDocument
	err = r.items.FindOneAndUpdate(ctx, bson.M{"_id": item.ID, "restaurantId": item.RestaurantID}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrItemNotFound
	}
	if err != nil {
		return err
	}
	item.CreatedAt = doc.CreatedAt
	return nil
}

func (r *MongoRepository) DeleteItem(ctx context.Context, restaurantID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.items.DeleteOne(ctx, bson.M{"_id": itemID, "restaurantId": restaurantID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *MongoRepository) CountItems(ctx context.Context, restaurantID, categoryID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.items.CountDocuments(ctx, bson.M{"restaurantId": restaurantID, "categoryId": categoryID})
}

func (r *MongoRepository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.categories.InsertOne(ctx, categoryDocument{
		Key:          categoryKey(category.RestaurantID, category.ID),
		ID:           category.ID,
		RestaurantID: category.RestaurantID,
		Name:         category.Name,
		Description:  category.Description,
		CreatedAt:    category.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrCategoryExists
	}
	return err
}

func (r *MongoRepository) ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "slug", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{"restaurantId": restaurantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	categories := make([]domain.MenuCategory, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, doc.toDomain())
	}
	return categories, nil
}

func (r *MongoRepository) GetCategory(ctx context.Context, restaurantID, categoryID string) (*domain.MenuCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc categoryDocument
	err := r.categories.FindOne(ctx, bson.M{"_id": categoryKey(restaurantID, categoryID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	category := doc.toDomain()
	return &category, nil
}

func (r *MongoRepository) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": categoryKey(restaurantID, categoryID)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "restaurantId", Value: 1}, {Key: "categoryId", Value: 1}},
	})
	return err
}
