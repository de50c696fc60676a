package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DATABASE_URL があるときだけ実DBで流す
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Cart{}, &model.CartItem{}))
	return db
}

func createTestCart(t *testing.T, db *gorm.DB) model.Cart {
	t.Helper()

	//user_idはユニークなので毎回別の値にする
	cart := model.Cart{UserID: time.Now().UnixNano()}
	require.NoError(t, db.Create(&cart).Error)

	t.Cleanup(func() {
		db.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{})
		db.Delete(&model.Cart{}, cart.ID)
	})
	return cart
}

func TestCartItemGormRepository_Upsert_SameProductMergesQuantity(t *testing.T) {
	db := openTestDB(t)
	cart := createTestCart(t, db)

	ctx := context.Background()
	r := NewCartItemGormRepository(db)

	require.NoError(t, r.UpsertByCartAndProduct(ctx, cart.ID, 7, 1))
	require.NoError(t, r.UpsertByCartAndProduct(ctx, cart.ID, 7, 1))

	items, err := r.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)

	//同一商品は行を増やさず数量加算
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestCartItemGormRepository_Upsert_DifferentProductAddsRow(t *testing.T) {
	db := openTestDB(t)
	cart := createTestCart(t, db)

	ctx := context.Background()
	r := NewCartItemGormRepository(db)

	require.NoError(t, r.UpsertByCartAndProduct(ctx, cart.ID, 7, 1))
	require.NoError(t, r.UpsertByCartAndProduct(ctx, cart.ID, 8, 1))

	items, err := r.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].ProductID)
	assert.Equal(t, int64(8), items[1].ProductID)
}

func TestCartItemGormRepository_Upsert_RejectsNonPositiveQuantity(t *testing.T) {
	r := NewCartItemGormRepository(nil)

	assert.Error(t, r.UpsertByCartAndProduct(context.Background(), 1, 1, 0))
	assert.Error(t, r.UpsertByCartAndProduct(context.Background(), 1, 1, -1))
}
