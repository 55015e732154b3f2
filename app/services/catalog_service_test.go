package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/repositories"
)

func newCatalogFixture() (*CatalogService, *memDB) {
	db := newMemDB()
	return NewCatalogService(&memCategoryStore{db: db}, &memProductStore{db: db}), db
}

func TestCreateCategoryNameBoundaries(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "ab")
	assert.True(t, errors.Is(err, ErrCategoryTooShort), "2 chars must be rejected")

	_, err = svc.CreateCategory(ctx, "abc")
	assert.NoError(t, err, "3 chars is the minimum")

	_, err = svc.CreateCategory(ctx, strings.Repeat("x", 50))
	assert.NoError(t, err, "50 chars is the maximum")

	_, err = svc.CreateCategory(ctx, strings.Repeat("y", 51))
	assert.True(t, errors.Is(err, ErrCategoryTooLong), "51 chars must be rejected")
}

func TestCreateCategoryChecksDuplicateBeforeLength(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "ab")
	require.True(t, errors.Is(err, ErrCategoryTooShort))

	_, err = svc.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)

	// A duplicate reports as duplicate even when it would also fail a
	// length check elsewhere.
	_, err = svc.CreateCategory(ctx, "Dairy")
	assert.True(t, errors.Is(err, ErrCategoryExists))
}

func TestCreateProductRequiresExistingCategory(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Name:     "Milk",
		Price:    2.5,
		Category: primitive.NewObjectID(),
		Stock:    10,
	})
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestGetProductPopulatesCategory(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, CreateProductParams{
		Name:     "Milk",
		Price:    2.5,
		Category: category.ID,
		Stock:    10,
	})
	require.NoError(t, err)

	detail, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", detail.Name)
	assert.Equal(t, "Dairy", detail.CategoryInfo.Name)
	assert.Equal(t, category.ID, detail.CategoryInfo.ID)

	// Fetching again without intervening mutation returns identical data.
	again, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, detail, again)
}

func TestGetProductUnknownID(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.GetProduct(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestModifyProductAppliesPartialPatch(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductParams{
		Name: "Milk", Price: 2.5, Category: category.ID, Stock: 10,
	})
	require.NoError(t, err)

	newPrice := 3.0
	updated, err := svc.ModifyProduct(ctx, product.ID, repositories.ProductPatch{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 3.0, updated.Price)
	assert.Equal(t, "Milk", updated.Name, "unpatched fields stay")
	assert.Equal(t, int64(10), updated.Stock)
}

func TestModifyProductRejectsUnknownCategory(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Dairy")
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, CreateProductParams{
		Name: "Milk", Price: 2.5, Category: category.ID, Stock: 10,
	})
	require.NoError(t, err)

	ghost := primitive.NewObjectID()
	_, err = svc.ModifyProduct(ctx, product.ID, repositories.ProductPatch{Category: &ghost})
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestRestockProductAddsToStock(t *testing.T) {
	svc, db := newCatalogFixture()
	ctx := context.Background()
	milk := db.addProduct("Milk", 2.5, 4)

	updated, err := svc.RestockProduct(ctx, milk, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.Stock)

	_, err = svc.RestockProduct(ctx, primitive.NewObjectID(), 6)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestDeleteProduct(t *testing.T) {
	svc, db := newCatalogFixture()
	ctx := context.Background()
	milk := db.addProduct("Milk", 2.5, 4)

	require.NoError(t, svc.DeleteProduct(ctx, milk))

	_, err := svc.GetProduct(ctx, milk)
	assert.True(t, errors.Is(err, ErrProductNotFound))

	err = svc.DeleteProduct(ctx, milk)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestListProducts(t *testing.T) {
	svc, db := newCatalogFixture()

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	db.addProduct("Milk", 2.5, 4)
	db.addProduct("Bread", 4.0, 2)

	products, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
