package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/domain/shared"
)

func TestNewStockEntry(t *testing.T) {
	warehouseID := uuid.New()
	productID := uuid.New()

	t.Run("creates stock entry successfully", func(t *testing.T) {
		entry, err := NewStockEntry(warehouseID, productID)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, warehouseID, entry.WarehouseID)
		assert.Equal(t, productID, entry.ProductID)
		assert.Equal(t, int64(0), entry.Quantity)
		assert.Equal(t, 1, entry.Version)
	})

	t.Run("fails with nil warehouse ID", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.Nil, productID)

		require.Error(t, err)
		assert.Nil(t, entry)
		assert.Contains(t, err.Error(), "Warehouse ID")
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		entry, err := NewStockEntry(warehouseID, uuid.Nil)

		require.Error(t, err)
		assert.Nil(t, entry)
		assert.Contains(t, err.Error(), "Product ID")
	})
}

func TestStockEntry_Adjust(t *testing.T) {
	t.Run("increases quantity", func(t *testing.T) {
		entry := createTestStockEntry(t)

		qty, err := entry.Adjust(40)

		require.NoError(t, err)
		assert.Equal(t, int64(40), qty)
		assert.Equal(t, int64(40), entry.Quantity)
	})

	t.Run("decreases quantity", func(t *testing.T) {
		entry := createTestStockEntry(t)
		entry.Quantity = 50

		qty, err := entry.Adjust(-30)

		require.NoError(t, err)
		assert.Equal(t, int64(20), qty)
	})

	t.Run("allows adjusting exactly to zero", func(t *testing.T) {
		entry := createTestStockEntry(t)
		entry.Quantity = 30

		qty, err := entry.Adjust(-30)

		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
		assert.True(t, entry.IsEmpty())
	})

	t.Run("rejects adjustment below zero and leaves quantity unchanged", func(t *testing.T) {
		entry := createTestStockEntry(t)
		entry.Quantity = 10
		versionBefore := entry.Version

		qty, err := entry.Adjust(-11)

		require.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.Equal(t, int64(10), qty)
		assert.Equal(t, int64(10), entry.Quantity)
		assert.Equal(t, versionBefore, entry.Version)
	})

	t.Run("zero delta is a no-op that succeeds", func(t *testing.T) {
		entry := createTestStockEntry(t)
		entry.Quantity = 5

		qty, err := entry.Adjust(0)

		require.NoError(t, err)
		assert.Equal(t, int64(5), qty)
	})

	t.Run("increments version on change", func(t *testing.T) {
		entry := createTestStockEntry(t)

		_, err := entry.Adjust(1)

		require.NoError(t, err)
		assert.Equal(t, 2, entry.Version)
	})
}

func TestStockEntry_CanDeduct(t *testing.T) {
	entry := createTestStockEntry(t)
	entry.Quantity = 10

	assert.True(t, entry.CanDeduct(10))
	assert.True(t, entry.CanDeduct(0))
	assert.False(t, entry.CanDeduct(11))
	assert.False(t, entry.CanDeduct(-1))
}

func createTestStockEntry(t *testing.T) *StockEntry {
	t.Helper()
	entry, err := NewStockEntry(uuid.New(), uuid.New())
	require.NoError(t, err)
	return entry
}
