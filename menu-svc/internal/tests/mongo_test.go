package tests

import (
	"testing"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
	"github.com/MozaAdirafi/tabletap/menu-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func itemDoc(id, name, price, category string) bson.D {
	p, _ := primitive.ParseDecimal128(price)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "restaurantId", Value: "rest-1"},
		{Key: "name", Value: name},
		{Key: "description", Value: ""},
		{Key: "price", Value: p},
		{Key: "categoryId", Value: category},
		{Key: "tags", Value: bson.A{"popular"}},
		{Key: "available", Value: true},
		{Key: "createdAt", Value: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create item", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.CreateItem(ctx, &domain.MenuItem{ID: "a", RestaurantID: "rest-1", Name: "Margherita", Price: dec("10.00"), CategoryID: "pizza"})
		assert.NoError(mt, err)
	})

	mt.Run("list items", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		ns := mt.DB.Name() + ".menu_items"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, itemDoc("a", "Margherita", "10.00", "pizza")),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch, itemDoc("b", "Lemonade", "5.50", "drinks")),
		)

		items, err := repo.ListItems(ctx, "rest-1", "")
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "Margherita", items[0].Name)
		assert.True(mt, dec("5.5").Equal(items[1].Price))
		assert.Equal(mt, []string{"popular"}, items[1].Tags)
	})

	mt.Run("get item", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		ns := mt.DB.Name() + ".menu_items"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, itemDoc("a", "Margherita", "10.00", "pizza")))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		item, err := repo.GetItem(ctx, "rest-1", "a")
		require.NoError(mt, err)
		assert.Equal(mt, "pizza", item.CategoryID)

		_, err = repo.GetItem(ctx, "rest-1", "missing")
		assert.ErrorIs(mt, err, domain.ErrItemNotFound)
	})

	mt.Run("update item keeps created at", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: itemDoc("a", "Margherita", "12.00", "pizza")},
		})

		item := &domain.MenuItem{ID: "a", RestaurantID: "rest-1", Name: "Margherita", Price: dec("12"), CategoryID: "pizza"}
		require.NoError(mt, repo.UpdateItem(ctx, item))
		assert.Equal(mt, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), item.CreatedAt.UTC())
	})

	mt.Run("delete missing item", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteItem(ctx, "rest-1", "missing")
		assert.ErrorIs(mt, err, domain.ErrItemNotFound)
	})

	mt.Run("count items", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		ns := mt.DB.Name() + ".menu_items"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}))

		count, err := repo.CountItems(ctx, "rest-1", "pizza")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), count)
	})

	mt.Run("duplicate category", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		err := repo.CreateCategory(ctx, &domain.MenuCategory{ID: "pizza", RestaurantID: "rest-1", Name: "Pizza"})
		assert.ErrorIs(mt, err, domain.ErrCategoryExists)
	})

	mt.Run("list categories", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		ns := mt.DB.Name() + ".menu_categories"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "rest-1/pizza"}, {Key: "slug", Value: "pizza"}, {Key: "restaurantId", Value: "rest-1"}, {Key: "name", Value: "Pizza"}},
			bson.D{{Key: "_id", Value: "rest-1/drinks"}, {Key: "slug", Value: "drinks"}, {Key: "restaurantId", Value: "rest-1"}, {Key: "name", Value: "Drinks"}},
		))

		categories, err := repo.ListCategories(ctx, "rest-1")
		require.NoError(mt, err)
		require.Len(mt, categories, 2)
		assert.Equal(mt, "pizza", categories[0].ID)
		assert.Equal(mt, "Drinks", categories[1].Name)
	})

	mt.Run("delete category", func(mt *mtest.T) {
		repo := storage.NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.DeleteCategory(ctx, "rest-1", "pizza"))
	})
}
