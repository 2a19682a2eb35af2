package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/product"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
)

type mockSnapshotStore struct {
	m       sync.RWMutex
	data    map[uint][]byte
	loadErr error
	saveErr error
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{data: map[uint][]byte{}}
}

func (m *mockSnapshotStore) Load(_ context.Context, userID uint) ([]byte, bool, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	data, ok := m.data[userID]
	return data, ok, nil
}

func (m *mockSnapshotStore) Save(_ context.Context, userID uint, data []byte) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[userID] = data
	return nil
}

func (m *mockSnapshotStore) Delete(_ context.Context, userID uint) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.data, userID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Tax:      config.TaxConfig{GSTRate: 0.05, PSTRate: 0.07},
		Delivery: config.DeliveryConfig{PlatformFeeCents: 99, BaseFeeCents: 499},
	}
}

func newTestService(snapshots SnapshotStore) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(snapshots, testConfig(), log)
}

var (
	tacoStore  = &store.Store{ID: 123, Name: "Taquería El Sol"}
	otherStore = &store.Store{ID: 456, Name: "Arepas Doña Rosa"}
	tacos      = &product.Product{ID: 1, StoreID: 123, Name: "Tacos al pastor", PriceCents: 1599}
	arepas     = &product.Product{ID: 2, StoreID: 456, Name: "Arepas rellenas", PriceCents: 849}
	tamales    = &product.Product{ID: 3, StoreID: 123, Name: "Tamales oaxaqueños", PriceCents: 849}
)

func TestAddItemToEmptyCart(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	assert.True(t, svc.CanAddToCart(ctx, 7, tacoStore.ID))

	c, err := svc.AddItem(ctx, 7, tacos, tacoStore, 1)
	require.NoError(t, err)

	require.NotNil(t, c.StoreID)
	assert.Equal(t, uint(123), *c.StoreID)
	assert.Equal(t, "Taquería El Sol", c.StoreName)
	assert.Equal(t, int64(1599), c.Summary.SubtotalCents)
	assert.Equal(t, int64(192), c.Summary.TaxCents)
	assert.Nil(t, c.Summary.DeliveryFeeCents)
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 1)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, 7, tacos, tacoStore, 2)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 3, c.Summary.ItemCount)
}

func TestAddItemFromDifferentStoreRejected(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 1)
	require.NoError(t, err)

	assert.False(t, svc.CanAddToCart(ctx, 7, otherStore.ID))

	_, err = svc.AddItem(ctx, 7, arepas, otherStore, 1)
	assert.ErrorIs(t, err, ErrStoreMismatch)

	// Cart is unchanged
	c := svc.GetCart(ctx, 7)
	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(1), c.Items[0].ProductID)
}

func TestUpdateQuantityToZeroRemovesItem(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 7, tamales, tacoStore, 3)
	require.NoError(t, err)

	before := svc.GetCart(ctx, 7)
	assert.Equal(t, 5, before.Summary.ItemCount)

	c := svc.UpdateQuantity(ctx, 7, tacos.ID, 0)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Summary.ItemCount)
}

func TestUpdateQuantityUnknownItemIsNoop(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 1)
	require.NoError(t, err)

	c := svc.UpdateQuantity(ctx, 7, 999, 5)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemoveLastItemUnbindsStore(t *testing.T) {
	svc := newTestService(newMockSnapshotStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 1)
	require.NoError(t, err)

	c := svc.RemoveItem(ctx, 7, tacos.ID)
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.StoreID)
	assert.Equal(t, "", c.StoreName)

	// Unbound cart accepts any store again
	assert.True(t, svc.CanAddToCart(ctx, 7, otherStore.ID))
}

func TestClearCart(t *testing.T) {
	snapshots := newMockSnapshotStore()
	svc := newTestService(snapshots)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 2)
	require.NoError(t, err)

	c := svc.Clear(ctx, 7)
	assert.Empty(t, c.Items)
	assert.Nil(t, c.StoreID)
	assert.Equal(t, int64(0), c.Summary.TotalCents)
	assert.Nil(t, c.Summary.DeliveryFeeCents)

	// Snapshot is gone too
	_, found, err := snapshots.Load(ctx, 7)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCorruptedSnapshotDegradesToEmptyCart(t *testing.T) {
	snapshots := newMockSnapshotStore()
	snapshots.data[7] = []byte("{not valid json")
	svc := newTestService(snapshots)

	c := svc.GetCart(context.Background(), 7)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Summary.TotalCents)
}

func TestSnapshotWithItemsButNoStoreDegradesToEmptyCart(t *testing.T) {
	snapshots := newMockSnapshotStore()
	snapshots.data[7] = []byte(`{"store_id":null,"items":[{"product_id":1,"name":"Tacos al pastor","unit_price_cents":1599,"quantity":2}]}`)
	svc := newTestService(snapshots)
	ctx := context.Background()

	// The unbound items are dropped rather than smuggled into another store
	c := svc.GetCart(ctx, 7)
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.StoreID)

	// Adding from a different store starts a fresh single-store cart
	c, err := svc.AddItem(ctx, 7, arepas, otherStore, 1)
	require.NoError(t, err)
	require.NotNil(t, c.StoreID)
	assert.Equal(t, uint(456), *c.StoreID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(2), c.Items[0].ProductID)
}

func TestBoundToRejectsItemsWithoutStoreBinding(t *testing.T) {
	c := &Cart{Items: []LineItem{{ProductID: 1, Quantity: 2}}}

	assert.False(t, c.BoundTo(123))
	assert.False(t, c.BoundTo(456))
}

func TestSnapshotLoadErrorDegradesToEmptyCart(t *testing.T) {
	snapshots := newMockSnapshotStore()
	snapshots.loadErr = assert.AnError
	svc := newTestService(snapshots)

	c := svc.GetCart(context.Background(), 7)
	assert.True(t, c.IsEmpty())
}

func TestSnapshotSaveFailureStillReturnsMutatedCart(t *testing.T) {
	snapshots := newMockSnapshotStore()
	snapshots.saveErr = assert.AnError
	svc := newTestService(snapshots)

	c, err := svc.AddItem(context.Background(), 7, tacos, tacoStore, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(1599), c.Summary.SubtotalCents)
}

func TestSummaryRecomputedOnEveryRead(t *testing.T) {
	snapshots := newMockSnapshotStore()
	svc := newTestService(snapshots)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, tacos, tacoStore, 2)
	require.NoError(t, err)

	first := svc.GetCart(ctx, 7)
	second := svc.GetCart(ctx, 7)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, int64(2*1599), second.Summary.SubtotalCents)
}
